package definition

import (
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMemoryIPC_ConcurrentSendsAreAllRecorded(t *testing.T) {
	defer goleak.VerifyNone(t)

	ipc := NewMemoryIPC()
	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(kind types.Kind) {
			defer wg.Done()
			ipc.Send(&types.Event{Header: types.Header{Kind: kind}})
		}(types.Kind(i % types.NumKinds))
	}
	wg.Wait()

	if got := len(ipc.Sent()); got != workers {
		t.Errorf("Sent() = %d events, want %d", got, workers)
	}
}

func TestMemoryIPC_Fail_ReturnsErrorWithoutRecording(t *testing.T) {
	ipc := NewMemoryIPC()
	ipc.Fail = true
	n, err := ipc.Send(&types.Event{Header: types.Header{Kind: types.KindHostCheck}})
	if err == nil || n >= 0 {
		t.Fatalf("Send() = (%d, %v), want a negative count and an error", n, err)
	}
	if len(ipc.Sent()) != 0 {
		t.Error("a failed send must not be recorded")
	}
}

func TestMemoryTransport_ConcurrentSendsAreAllRecorded(t *testing.T) {
	defer goleak.VerifyNone(t)

	transport := NewMemoryTransport()
	node := &types.Node{Name: "peer1"}
	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			transport.Send(node, &types.Event{Header: types.Header{Kind: types.KindComment}})
		}()
	}
	wg.Wait()

	if got := len(transport.Sent()); got != workers {
		t.Errorf("Sent() = %d sends, want %d", got, workers)
	}
}

func TestMemoryTransport_FailIsPerNode(t *testing.T) {
	transport := NewMemoryTransport()
	good := &types.Node{Name: "peer-ok"}
	bad := &types.Node{Name: "peer-down"}
	transport.Fail["peer-down"] = true

	if _, err := transport.Send(good, &types.Event{}); err != nil {
		t.Errorf("send to a non-failing node must succeed, got %v", err)
	}
	if _, err := transport.Send(bad, &types.Event{}); err == nil {
		t.Error("send to a node named in Fail must return an error")
	}
	if len(transport.Sent()) != 1 {
		t.Error("only the successful send must be recorded; a failed send is not")
	}
}
