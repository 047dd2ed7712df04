package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/vidmark-cli/vidmark/constant"
	"github.com/vidmark-cli/vidmark/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// videoIDPattern is the 11-character external video identifier alphabet.
var videoIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// MPV implements the Player interface using mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	mu         sync.Mutex    // Protects socket writes
}

// NewMPV creates a new MPV player instance (does not start the process).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// CueVideoByID loads the watch page for the given identifier into mpv,
// paused. The mpv process is spawned on the first cue and reused afterwards.
func (m *MPV) CueVideoByID(videoID string) error {
	if !videoIDPattern.MatchString(videoID) {
		return fmt.Errorf("invalid video identifier: %q", videoID)
	}

	if !m.IsRunning() {
		if err := m.start(); err != nil {
			return err
		}
	}

	// Cue, don't play: hold the pause property across the load.
	if _, err := m.sendCommand([]interface{}{"set_property", "pause", true}); err != nil {
		return fmt.Errorf("cue pause: %w", err)
	}

	_, err := m.sendCommand([]interface{}{"loadfile", constant.WatchHost + videoID, "replace"})
	if err != nil {
		return fmt.Errorf("cue %s: %w", videoID, err)
	}
	return nil
}

// start spawns an idle mpv process with the IPC server enabled.
func (m *MPV) start() error {
	// Generate a random socket path using os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/)
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("vidmark-%x.sock", randomBytes))
	}

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
		"--idle=yes",
		"--pause=yes",
	}

	m.cmd = exec.Command("mpv", args...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()

	// Disable standard pipes to prevent resource leaks.
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Background goroutine to reap the process and prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	// Wait for the IPC socket to become available
	if err := m.waitForSocket(); err != nil {
		// If socket never became ready, kill the orphaned process
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
				// Already exited
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		// Check if process already exited
		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// PlayVideo clears the pause property, starting or resuming playback.
func (m *MPV) PlayVideo() error {
	return m.set("pause", false)
}

// PauseVideo sets the pause property, suspending playback.
func (m *MPV) PauseVideo() error {
	return m.set("pause", true)
}

// Mute silences audio output.
func (m *MPV) Mute() error {
	return m.set("mute", true)
}

// UnMute restores audio output.
func (m *MPV) UnMute() error {
	return m.set("mute", false)
}

// SetVolume applies an absolute volume level (0-100).
func (m *MPV) SetVolume(volume int) error {
	return m.set("volume", volume)
}

// SetSize forwards viewport dimensions to the mpv window geometry.
func (m *MPV) SetSize(width, height int) error {
	return m.set("geometry", fmt.Sprintf("%dx%d", width, height))
}

// SeekTo moves playback to the given absolute position in seconds.
// allowSeekAhead selects exact seeking past the buffered region; otherwise
// mpv snaps to the nearest keyframe.
func (m *MPV) SeekTo(seconds int, allowSeekAhead bool) error {
	mode := "absolute+keyframes"
	if allowSeekAhead {
		mode = "absolute+exact"
	}
	_, err := m.sendCommand([]interface{}{"seek", seconds, mode})
	return err
}

// GetCurrentTime returns the current playback position in seconds.
func (m *MPV) GetCurrentTime() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// GetDuration returns the total duration of the cued video in seconds.
func (m *MPV) GetDuration() (float64, error) {
	return m.getFloatProperty("duration")
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	// Fast check: process already exited?
	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.socketPath == "" {
		return nil
	}

	// Try graceful quit via IPC
	_, _ = m.sendCommand([]interface{}{"quit"})

	// Wait for process to exit (with timeout)
	select {
	case <-m.exited:
		// Clean exit
	case <-time.After(3 * time.Second):
		// Force kill if graceful quit didn't work
		_ = killProcess(m.cmd)
	}

	// Clean up the socket file
	_ = os.Remove(m.socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// set writes an mpv property over IPC.
func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}
