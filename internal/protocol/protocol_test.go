package protocol

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/errors"
)

// mockTransport implements Transport for testing.
type mockTransport struct {
	mu       sync.Mutex
	sendErr  error
	commands []Command
	msgChan  chan map[string]any
	errChan  chan error
}

func newMockTransport() *mockTransport {
	return &mockTransport{
		commands: make([]Command, 0, 10),
		msgChan:  make(chan map[string]any, 10),
		errChan:  make(chan error, 10),
	}
}

func (m *mockTransport) ReadMessages(_ context.Context) (<-chan map[string]any, <-chan error) {
	return m.msgChan, m.errChan
}

func (m *mockTransport) SendMessage(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}

	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return err
	}

	m.commands = append(m.commands, cmd)

	return nil
}

func (m *mockTransport) sentCommands() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Command, len(m.commands))
	copy(result, m.commands)

	return result
}

func (m *mockTransport) failSends(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sendErr = err
}

func (m *mockTransport) respond(msg map[string]any) {
	m.msgChan <- msg
}

func (m *mockTransport) closeConnection() {
	close(m.msgChan)
	close(m.errChan)
}

func startCorrelator(t *testing.T, transport *mockTransport) *Correlator {
	t.Helper()

	correlator := NewCorrelator(slog.Default(), transport)
	require.NoError(t, correlator.Start(context.Background()))

	return correlator
}

func TestSendCommand_ResolvesWithResult(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	done := make(chan struct{})

	var result any

	var err error

	go func() {
		defer close(done)

		result, err = correlator.SendCommand(
			context.Background(), "getFileContent", nil, "", time.Second)
	}()

	waitForPending(t, correlator, 1)

	transport.respond(map[string]any{
		"id":     float64(1),
		"result": map[string]any{"ok": true},
	})

	<-done
	require.NoError(t, err)
	require.Equal(t, map[string]any{"ok": true}, result)
	require.Equal(t, 0, correlator.Pending())
}

func TestSendCommand_DefaultsParamsToEmptyObject(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	done := make(chan struct{})

	go func() {
		defer close(done)

		_, _ = correlator.SendCommand(context.Background(), "saveFile", nil, "", 50*time.Millisecond)
	}()

	waitForSent(t, transport, 1)

	sent := transport.sentCommands()
	require.Len(t, sent, 1)
	require.Equal(t, int64(1), sent[0].ID)
	require.Equal(t, "saveFile", sent[0].Action)
	require.NotNil(t, sent[0].Params, "omitted params must be sent as an empty object")
	require.Empty(t, sent[0].Params)

	<-done
}

func TestSendCommand_IDsStrictlyIncreasing(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	var wg sync.WaitGroup

	for range 5 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, _ = correlator.SendCommand(context.Background(), "saveFile", nil, "", 20*time.Millisecond)
		}()
	}

	wg.Wait()

	sent := transport.sentCommands()
	require.Len(t, sent, 5)

	seen := make(map[int64]bool, 5)
	for _, cmd := range sent {
		require.False(t, seen[cmd.ID], "id %d issued twice", cmd.ID)

		seen[cmd.ID] = true
		require.GreaterOrEqual(t, cmd.ID, int64(1))
		require.LessOrEqual(t, cmd.ID, int64(5))
	}
}

func TestSendCommand_RemoteError(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	// Burn ids 1-4 so the command under test gets id 5.
	transport.failSends(stderrors.New("down"))

	for range 4 {
		_, _ = correlator.SendCommand(context.Background(), "noop", nil, "", time.Second)
	}

	transport.failSends(nil)

	done := make(chan struct{})

	var err error

	go func() {
		defer close(done)

		_, err = correlator.SendCommand(
			context.Background(), "openFile",
			map[string]any{"path": "gone.go"}, "Open file: gone.go", time.Second)
	}()

	waitForPending(t, correlator, 1)

	transport.respond(map[string]any{"id": float64(5), "error": "file not found"})

	<-done
	require.Error(t, err)

	var remote *errors.RemoteError

	require.ErrorAs(t, err, &remote)
	require.Equal(t, int64(5), remote.RequestID)
	require.Equal(t, "openFile", remote.Action)
	require.Contains(t, remote.Message, "file not found")
}

func TestSendCommand_ErrorFieldTakesPrecedenceOverResult(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	done := make(chan struct{})

	var err error

	go func() {
		defer close(done)

		_, err = correlator.SendCommand(context.Background(), "saveFile", nil, "", time.Second)
	}()

	waitForPending(t, correlator, 1)

	transport.respond(map[string]any{
		"id":     float64(1),
		"result": "ignored",
		"error":  "write failed",
	})

	<-done

	var remote *errors.RemoteError

	require.ErrorAs(t, err, &remote)
	require.Equal(t, "write failed", remote.Message)
}

func TestSendCommand_Timeout(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	start := time.Now()
	_, err := correlator.SendCommand(context.Background(), "saveFile", nil, "", 10*time.Millisecond)

	require.ErrorIs(t, err, errors.ErrCommandTimeout)
	require.Less(t, time.Since(start), time.Second)
	require.Equal(t, 0, correlator.Pending(), "timeout must remove the pending entry")

	// A synthetic late response for the timed-out id is ignored and raises
	// no secondary completion.
	transport.respond(map[string]any{"id": float64(1), "result": "late"})
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, 0, correlator.Pending())
}

func TestSendCommand_SynchronousSendFailure(t *testing.T) {
	transport := newMockTransport()
	transport.failSends(stderrors.New("socket write failed"))

	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	_, err := correlator.SendCommand(context.Background(), "openFile", nil, "", time.Second)

	require.Error(t, err)
	require.Contains(t, err.Error(), "socket write failed")
	require.Equal(t, 0, correlator.Pending(), "failed send must not leave an orphaned entry")
}

func TestSendCommand_ContextCancellation(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		_, err := correlator.SendCommand(ctx, "type", map[string]any{"text": "x"}, "", time.Minute)
		done <- err
	}()

	waitForPending(t, correlator, 1)
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	require.Equal(t, 0, correlator.Pending())
}

func TestReadLoop_IgnoresUnknownID(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	done := make(chan struct{})

	var result any

	go func() {
		defer close(done)

		result, _ = correlator.SendCommand(context.Background(), "saveFile", nil, "", time.Second)
	}()

	waitForPending(t, correlator, 1)

	// Unsolicited frame: no pending entry for 999. Must not affect the
	// in-flight command.
	transport.respond(map[string]any{"id": float64(999), "result": "nobody asked"})
	transport.respond(map[string]any{"subtype": "status"}) // no id at all
	transport.respond(map[string]any{"id": float64(1), "result": "saved"})

	<-done
	require.Equal(t, "saved", result)
}

func TestReadLoop_SurvivesMalformedFrame(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	done := make(chan struct{})

	var result any

	var err error

	go func() {
		defer close(done)

		result, err = correlator.SendCommand(context.Background(), "saveFile", nil, "", time.Second)
	}()

	waitForPending(t, correlator, 1)

	// A decode failure is reported on the error channel; the loop must
	// drop it and keep routing.
	transport.errChan <- &errors.DecodeError{RawData: "{not json", Err: stderrors.New("bad frame")}
	transport.respond(map[string]any{"id": float64(1), "result": "ok"})

	<-done
	require.NoError(t, err)
	require.Equal(t, "ok", result)
}

func TestReadLoop_ConnectionCloseFailsAllPending(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	// Burn ids so the two pending commands get ids 7 and 8.
	transport.failSends(stderrors.New("down"))

	for range 6 {
		_, _ = correlator.SendCommand(context.Background(), "noop", nil, "", time.Second)
	}

	transport.failSends(nil)

	results := make(chan error, 2)

	for range 2 {
		go func() {
			_, err := correlator.SendCommand(context.Background(), "openFile", nil, "", time.Minute)
			results <- err
		}()
	}

	waitForSent(t, transport, 2)

	sent := transport.sentCommands()
	ids := []int64{sent[len(sent)-2].ID, sent[len(sent)-1].ID}
	require.ElementsMatch(t, []int64{7, 8}, ids)

	transport.closeConnection()

	for range 2 {
		err := <-results
		require.ErrorIs(t, err, errors.ErrConnectionClosed)
	}

	require.Equal(t, 0, correlator.Pending())
	correlator.Stop()
}

func TestReadLoop_FatalTransportErrorFailsPending(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	done := make(chan error, 1)

	go func() {
		_, err := correlator.SendCommand(context.Background(), "openFile", nil, "", time.Minute)
		done <- err
	}()

	waitForPending(t, correlator, 1)

	transport.errChan <- stderrors.New("unexpected EOF")

	err := <-done
	require.Error(t, err)
	require.ErrorContains(t, err, "unexpected EOF")
	require.Error(t, correlator.FatalError())

	correlator.Stop()
}

func TestCorrelator_Stop_MultipleCalls(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	correlator.Stop()
	correlator.Stop()
	correlator.Stop()

	select {
	case <-correlator.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestCorrelator_SetFatalError_MultipleCalls(t *testing.T) {
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	correlator.SetFatalError(stderrors.New("first error"))
	require.EqualError(t, correlator.FatalError(), "first error")

	// Second call should not panic, and first error is preserved.
	correlator.SetFatalError(stderrors.New("second error"))
	require.EqualError(t, correlator.FatalError(), "first error")
}

func TestSendCommand_ResponseTimeoutRace(t *testing.T) {
	// This test attempts to trigger the race between the timeout path and
	// the response path calling take for the same id. Exactly one wins;
	// the continuation must be completed exactly once either way.
	//
	// Run with: go test -race -count=100 -run TestSendCommand_ResponseTimeoutRace
	for range 100 {
		transport := newMockTransport()
		correlator := startCorrelator(t, transport)

		done := make(chan error, 1)

		go func() {
			// Very short timeout to maximize the race window.
			_, err := correlator.SendCommand(
				context.Background(), "saveFile", nil, "", time.Millisecond)
			done <- err
		}()

		waitForPending(t, correlator, 1)

		// Inject the response while the timeout may be firing.
		time.Sleep(500 * time.Microsecond)
		transport.respond(map[string]any{"id": float64(1), "result": "ok"})

		err := <-done
		if err != nil {
			require.ErrorIs(t, err, errors.ErrCommandTimeout)
		}

		require.Equal(t, 0, correlator.Pending())
		correlator.Stop()
	}
}

func TestSendCommand_ConcurrentOutOfOrderResponses(t *testing.T) {
	// Responses to different in-flight commands may resolve in any order
	// relative to send order.
	transport := newMockTransport()
	correlator := startCorrelator(t, transport)

	defer correlator.Stop()

	const n = 5

	type outcome struct {
		id     int64
		result any
		err    error
	}

	results := make(chan outcome, n)

	var wg sync.WaitGroup

	for range n {
		wg.Add(1)

		go func() {
			defer wg.Done()

			res, err := correlator.SendCommand(
				context.Background(), "getFileContent", nil, "", time.Second)
			results <- outcome{result: res, err: err}
		}()
	}

	waitForPending(t, correlator, n)

	// Resolve in reverse send order.
	for id := int64(n); id >= 1; id-- {
		transport.respond(map[string]any{
			"id":     float64(id),
			"result": map[string]any{"id": float64(id)},
		})
	}

	wg.Wait()
	close(results)

	count := 0

	for out := range results {
		require.NoError(t, out.err)
		require.NotNil(t, out.result)

		count++
	}

	require.Equal(t, n, count)
}

// waitForSent polls until the transport has recorded n sent commands.
func waitForSent(t *testing.T, m *mockTransport, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(m.sentCommands()) >= n {
			return
		}

		time.Sleep(time.Millisecond)
	}

	t.Fatalf("transport never recorded %d sent commands (have %d)", n, len(m.sentCommands()))
}

// waitForPending polls until the correlator holds n pending entries.
func waitForPending(t *testing.T, c *Correlator, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Pending() >= n {
			return
		}

		time.Sleep(time.Millisecond)
	}

	t.Fatalf("pending table never reached %d entries (have %d)", n, c.Pending())
}
