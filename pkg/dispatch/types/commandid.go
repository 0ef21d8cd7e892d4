package types

// CommandID names an external command using the same symbolic CMD_*
// identifiers the monitoring host process assigns. The host object
// model is an external collaborator out of scope for this module, so
// these values are this module's own enumeration rather than a copy of
// the host's numeric layout -- the same relationship Kind has to the
// host's own callback ids. They're grouped in the same order the
// command-id classification switch they're grounded on groups them,
// so the grouping itself stays easy to diff against.
type CommandID int

const (
	CmdNone CommandID = iota

	// Comments are handled by their own comment events; forwarding the
	// raw command too would just duplicate that.
	CmdDelHostComment
	CmdDelSvcComment
	CmdAddHostComment
	CmdAddSvcComment

	// Downtime deletes only carry a downtime id, which is useless (and
	// potentially dangerous) without the object it refers to; the
	// dedicated downtime-delete event carries the same information.
	CmdDelHostDowntime
	CmdDelSvcDowntime

	// Routed by hostname: get_cmd_selection on the command's first
	// argument picks the node, with everything below forwarded as-is.
	CmdAcknowledgeHostProblem
	CmdAcknowledgeSvcProblem
	CmdScheduleHostDowntime
	CmdScheduleSvcDowntime
	CmdScheduleAndPropagateTriggeredHostDowntime
	CmdScheduleAndPropagateHostDowntime
	CmdEnableSvcCheck
	CmdDisableSvcCheck
	CmdScheduleSvcCheck
	CmdDelaySvcNotification
	CmdDelayHostNotification
	CmdEnableHostSvcChecks
	CmdDisableHostSvcChecks
	CmdScheduleHostSvcChecks
	CmdDelayHostSvcNotifications
	CmdDelAllHostComments
	CmdDelAllSvcComments
	CmdEnableSvcNotifications
	CmdDisableSvcNotifications
	CmdEnableHostNotifications
	CmdDisableHostNotifications
	CmdEnableHostSvcNotifications
	CmdDisableHostSvcNotifications
	CmdEnablePassiveSvcChecks
	CmdDisablePassiveSvcChecks
	CmdEnableHostEventHandler
	CmdDisableHostEventHandler
	CmdEnableSvcEventHandler
	CmdDisableSvcEventHandler
	CmdEnableHostCheck
	CmdDisableHostCheck
	CmdStartObsessingOverSvcChecks
	CmdStopObsessingOverSvcChecks
	CmdRemoveHostAcknowledgement
	CmdRemoveSvcAcknowledgement
	CmdScheduleForcedHostSvcChecks
	CmdScheduleForcedSvcCheck
	CmdEnableHostFlapDetection
	CmdDisableHostFlapDetection
	CmdEnableSvcFlapDetection
	CmdDisableSvcFlapDetection
	CmdDisablePassiveHostChecks
	CmdScheduleHostCheck
	CmdScheduleForcedHostCheck
	CmdChangeHostEventHandler
	CmdChangeSvcEventHandler
	CmdChangeHostCheckCommand
	CmdChangeSvcCheckCommand
	CmdChangeNormalHostCheckInterval
	CmdChangeNormalSvcCheckInterval
	CmdChangeRetrySvcCheckInterval
	CmdChangeMaxHostCheckAttempts
	CmdChangeMaxSvcCheckAttempts
	CmdEnableHostAndChildNotifications
	CmdDisableHostAndChildNotifications
	CmdEnableHostFreshnessChecks
	CmdDisableHostFreshnessChecks
	CmdSetHostNotificationNumber
	CmdSetSvcNotificationNumber
	CmdChangeHostCheckTimeperiod
	CmdChangeSvcCheckTimeperiod
	CmdChangeCustomHostVar
	CmdChangeCustomSvcVar
	CmdEnableContactHostNotifications
	CmdDisableContactHostNotifications
	CmdEnableContactSvcNotifications
	CmdDisableContactSvcNotifications
	CmdEnableContactgroupHostNotifications
	CmdDisableContactgroupHostNotifications
	CmdEnableContactgroupSvcNotifications
	CmdDisableContactgroupSvcNotifications
	CmdChangeRetryHostCheckInterval
	CmdChangeHostNotificationTimeperiod
	CmdChangeSvcNotificationTimeperiod
	CmdChangeContactHostNotificationTimeperiod
	CmdChangeContactSvcNotificationTimeperiod
	CmdChangeHostModattr
	CmdChangeSvcModattr

	// Check-result and custom-notification commands are forwarded to
	// every node but only executed on the one owning the object.
	CmdSendCustomHostNotification
	CmdProcessHostCheckResult
	CmdSendCustomSvcNotification
	CmdProcessServiceCheckResult

	// Hostgroup commands route by hostgroup selection.
	CmdScheduleHostgroupHostDowntime
	CmdScheduleHostgroupSvcDowntime
	CmdEnableHostgroupSvcNotifications
	CmdDisableHostgroupSvcNotifications
	CmdEnableHostgroupHostNotifications
	CmdDisableHostgroupHostNotifications
	CmdEnableHostgroupSvcChecks
	CmdDisableHostgroupSvcChecks
	CmdEnableHostgroupHostChecks
	CmdDisableHostgroupHostChecks
	CmdEnableHostgroupPassiveSvcChecks
	CmdDisableHostgroupPassiveSvcChecks
	CmdEnableHostgroupPassiveHostChecks
	CmdDisableHostgroupPassiveHostChecks

	// Servicegroup commands fan out to peers and pollers, never masters.
	CmdScheduleServicegroupHostDowntime
	CmdScheduleServicegroupSvcDowntime
	CmdEnableServicegroupSvcNotifications
	CmdDisableServicegroupSvcNotifications
	CmdEnableServicegroupHostNotifications
	CmdDisableServicegroupHostNotifications
	CmdEnableServicegroupSvcChecks
	CmdDisableServicegroupSvcChecks
	CmdEnableServicegroupHostChecks
	CmdDisableServicegroupHostChecks
	CmdEnableServicegroupPassiveSvcChecks
	CmdDisableServicegroupPassiveSvcChecks
	CmdEnableServicegroupPassiveHostChecks
	CmdDisableServicegroupPassiveHostChecks
)

var commandCategories = map[CommandID]CommandCategory{
	CmdDelHostComment: CmdCommentOrDowntimeID,
	CmdDelSvcComment:  CmdCommentOrDowntimeID,
	CmdAddHostComment: CmdCommentOrDowntimeID,
	CmdAddSvcComment:  CmdCommentOrDowntimeID,
	CmdDelHostDowntime: CmdCommentOrDowntimeID,
	CmdDelSvcDowntime:  CmdCommentOrDowntimeID,

	CmdAcknowledgeHostProblem:                    CmdPerHostService,
	CmdAcknowledgeSvcProblem:                     CmdPerHostService,
	CmdScheduleHostDowntime:                      CmdPerHostService,
	CmdScheduleSvcDowntime:                       CmdPerHostService,
	CmdScheduleAndPropagateTriggeredHostDowntime:  CmdPerHostService,
	CmdScheduleAndPropagateHostDowntime:           CmdPerHostService,
	CmdEnableSvcCheck:                            CmdPerHostService,
	CmdDisableSvcCheck:                           CmdPerHostService,
	CmdScheduleSvcCheck:                          CmdPerHostService,
	CmdDelaySvcNotification:                      CmdPerHostService,
	CmdDelayHostNotification:                     CmdPerHostService,
	CmdEnableHostSvcChecks:                       CmdPerHostService,
	CmdDisableHostSvcChecks:                      CmdPerHostService,
	CmdScheduleHostSvcChecks:                     CmdPerHostService,
	CmdDelayHostSvcNotifications:                 CmdPerHostService,
	CmdDelAllHostComments:                        CmdPerHostService,
	CmdDelAllSvcComments:                         CmdPerHostService,
	CmdEnableSvcNotifications:                    CmdPerHostService,
	CmdDisableSvcNotifications:                   CmdPerHostService,
	CmdEnableHostNotifications:                   CmdPerHostService,
	CmdDisableHostNotifications:                  CmdPerHostService,
	CmdEnableHostSvcNotifications:                CmdPerHostService,
	CmdDisableHostSvcNotifications:               CmdPerHostService,
	CmdEnablePassiveSvcChecks:                    CmdPerHostService,
	CmdDisablePassiveSvcChecks:                   CmdPerHostService,
	CmdEnableHostEventHandler:                    CmdPerHostService,
	CmdDisableHostEventHandler:                   CmdPerHostService,
	CmdEnableSvcEventHandler:                     CmdPerHostService,
	CmdDisableSvcEventHandler:                    CmdPerHostService,
	CmdEnableHostCheck:                           CmdPerHostService,
	CmdDisableHostCheck:                          CmdPerHostService,
	CmdStartObsessingOverSvcChecks:               CmdPerHostService,
	CmdStopObsessingOverSvcChecks:                CmdPerHostService,
	CmdRemoveHostAcknowledgement:                 CmdPerHostService,
	CmdRemoveSvcAcknowledgement:                  CmdPerHostService,
	CmdScheduleForcedHostSvcChecks:               CmdPerHostService,
	CmdScheduleForcedSvcCheck:                    CmdPerHostService,
	CmdEnableHostFlapDetection:                   CmdPerHostService,
	CmdDisableHostFlapDetection:                  CmdPerHostService,
	CmdEnableSvcFlapDetection:                    CmdPerHostService,
	CmdDisableSvcFlapDetection:                   CmdPerHostService,
	CmdDisablePassiveHostChecks:                  CmdPerHostService,
	CmdScheduleHostCheck:                         CmdPerHostService,
	CmdScheduleForcedHostCheck:                   CmdPerHostService,
	CmdChangeHostEventHandler:                    CmdPerHostService,
	CmdChangeSvcEventHandler:                     CmdPerHostService,
	CmdChangeHostCheckCommand:                    CmdPerHostService,
	CmdChangeSvcCheckCommand:                     CmdPerHostService,
	CmdChangeNormalHostCheckInterval:             CmdPerHostService,
	CmdChangeNormalSvcCheckInterval:              CmdPerHostService,
	CmdChangeRetrySvcCheckInterval:               CmdPerHostService,
	CmdChangeMaxHostCheckAttempts:                CmdPerHostService,
	CmdChangeMaxSvcCheckAttempts:                 CmdPerHostService,
	CmdEnableHostAndChildNotifications:           CmdPerHostService,
	CmdDisableHostAndChildNotifications:          CmdPerHostService,
	CmdEnableHostFreshnessChecks:                 CmdPerHostService,
	CmdDisableHostFreshnessChecks:                CmdPerHostService,
	CmdSetHostNotificationNumber:                 CmdPerHostService,
	CmdSetSvcNotificationNumber:                  CmdPerHostService,
	CmdChangeHostCheckTimeperiod:                 CmdPerHostService,
	CmdChangeSvcCheckTimeperiod:                  CmdPerHostService,
	CmdChangeCustomHostVar:                       CmdPerHostService,
	CmdChangeCustomSvcVar:                        CmdPerHostService,
	CmdEnableContactHostNotifications:            CmdPerHostService,
	CmdDisableContactHostNotifications:           CmdPerHostService,
	CmdEnableContactSvcNotifications:             CmdPerHostService,
	CmdDisableContactSvcNotifications:            CmdPerHostService,
	CmdEnableContactgroupHostNotifications:       CmdPerHostService,
	CmdDisableContactgroupHostNotifications:      CmdPerHostService,
	CmdEnableContactgroupSvcNotifications:        CmdPerHostService,
	CmdDisableContactgroupSvcNotifications:       CmdPerHostService,
	CmdChangeRetryHostCheckInterval:              CmdPerHostService,
	CmdChangeHostNotificationTimeperiod:          CmdPerHostService,
	CmdChangeSvcNotificationTimeperiod:           CmdPerHostService,
	CmdChangeContactHostNotificationTimeperiod:   CmdPerHostService,
	CmdChangeContactSvcNotificationTimeperiod:    CmdPerHostService,
	CmdChangeHostModattr:                         CmdPerHostService,
	CmdChangeSvcModattr:                          CmdPerHostService,

	CmdSendCustomHostNotification: CmdProcessCheckResultOrCustomNotification,
	CmdProcessHostCheckResult:     CmdProcessCheckResultOrCustomNotification,
	CmdSendCustomSvcNotification:  CmdProcessCheckResultOrCustomNotification,
	CmdProcessServiceCheckResult:  CmdProcessCheckResultOrCustomNotification,

	CmdScheduleHostgroupHostDowntime:      CmdHostgroup,
	CmdScheduleHostgroupSvcDowntime:       CmdHostgroup,
	CmdEnableHostgroupSvcNotifications:    CmdHostgroup,
	CmdDisableHostgroupSvcNotifications:   CmdHostgroup,
	CmdEnableHostgroupHostNotifications:   CmdHostgroup,
	CmdDisableHostgroupHostNotifications:  CmdHostgroup,
	CmdEnableHostgroupSvcChecks:           CmdHostgroup,
	CmdDisableHostgroupSvcChecks:          CmdHostgroup,
	CmdEnableHostgroupHostChecks:          CmdHostgroup,
	CmdDisableHostgroupHostChecks:         CmdHostgroup,
	CmdEnableHostgroupPassiveSvcChecks:    CmdHostgroup,
	CmdDisableHostgroupPassiveSvcChecks:   CmdHostgroup,
	CmdEnableHostgroupPassiveHostChecks:   CmdHostgroup,
	CmdDisableHostgroupPassiveHostChecks:  CmdHostgroup,

	CmdScheduleServicegroupHostDowntime:      CmdServicegroup,
	CmdScheduleServicegroupSvcDowntime:       CmdServicegroup,
	CmdEnableServicegroupSvcNotifications:    CmdServicegroup,
	CmdDisableServicegroupSvcNotifications:   CmdServicegroup,
	CmdEnableServicegroupHostNotifications:   CmdServicegroup,
	CmdDisableServicegroupHostNotifications:  CmdServicegroup,
	CmdEnableServicegroupSvcChecks:           CmdServicegroup,
	CmdDisableServicegroupSvcChecks:          CmdServicegroup,
	CmdEnableServicegroupHostChecks:          CmdServicegroup,
	CmdDisableServicegroupHostChecks:         CmdServicegroup,
	CmdEnableServicegroupPassiveSvcChecks:    CmdServicegroup,
	CmdDisableServicegroupPassiveSvcChecks:   CmdServicegroup,
	CmdEnableServicegroupPassiveHostChecks:   CmdServicegroup,
	CmdDisableServicegroupPassiveHostChecks:  CmdServicegroup,
}

// Category classifies id the way hook_external_command's switch does.
// Anything not in the table is a global command forwarded to peers
// and pollers if any exist, and dropped otherwise (CmdUnknown).
func (id CommandID) Category() CommandCategory {
	if cat, ok := commandCategories[id]; ok {
		return cat
	}
	return CmdUnknown
}
