package playback

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Synthesizer renders text with a voice into an audio stream. Satisfied by
// *provider.Registry.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceURI string) (io.ReadCloser, error)
}

// LocalEngine implements Engine on the local machine: it synthesizes the
// utterance to a temp file through a TTS provider and plays it with
// whichever system audio player is installed. Pause and resume ride on
// SIGSTOP/SIGCONT to the player process.
type LocalEngine struct {
	synth  Synthesizer
	player string

	mu          sync.Mutex
	cmd         *exec.Cmd
	cancelSynth context.CancelFunc
	interrupted bool
}

// NewLocalEngine creates an engine using the first available audio player.
// When no player exists the engine reports unsupported and every operation
// is a no-op.
func NewLocalEngine(synth Synthesizer) *LocalEngine {
	player := detectPlayer()
	if player == "" {
		log.Warn().Msg("No audio player found; read-aloud disabled")
	}
	return &LocalEngine{synth: synth, player: player}
}

// detectPlayer finds a usable audio player command.
func detectPlayer() string {
	for _, candidate := range []string{"afplay", "aplay", "paplay", "ffplay"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// playerArgs builds the argument list for a player command.
func playerArgs(player, audioFile string) []string {
	if player == "ffplay" {
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", audioFile}
	}
	return []string{audioFile}
}

// Supported implements Engine.
func (e *LocalEngine) Supported() bool {
	return e.player != ""
}

// Speak implements Engine. Synthesis and playback run on their own
// goroutine; completion and failure are reported through the utterance
// callbacks.
func (e *LocalEngine) Speak(u *Utterance) error {
	if e.player == "" {
		return fmt.Errorf("no audio player available")
	}
	if u.VoiceURI == "" {
		return fmt.Errorf("utterance has no voice")
	}

	ctx, cancel := context.WithCancel(context.Background())

	e.mu.Lock()
	e.cancelSynth = cancel
	e.interrupted = false
	e.mu.Unlock()

	go e.run(ctx, u)
	return nil
}

func (e *LocalEngine) run(ctx context.Context, u *Utterance) {
	stream, err := e.synth.Synthesize(ctx, StripMarkdown(u.Text), u.VoiceURI)
	if err != nil {
		if ctx.Err() != nil {
			e.dispatchError(u, ErrInterrupted)
			return
		}
		e.dispatchError(u, fmt.Errorf("synthesis failed: %w", err))
		return
	}

	audioFile, err := saveToTemp(stream)
	_ = stream.Close()
	if err != nil {
		e.dispatchError(u, err)
		return
	}
	defer func() {
		_ = os.Remove(audioFile)
	}()

	cmd := exec.Command(e.player, playerArgs(e.player, audioFile)...)

	e.mu.Lock()
	if e.interrupted || ctx.Err() != nil {
		e.mu.Unlock()
		e.dispatchError(u, ErrInterrupted)
		return
	}
	if err := cmd.Start(); err != nil {
		e.mu.Unlock()
		e.dispatchError(u, fmt.Errorf("failed to start player: %w", err))
		return
	}
	e.cmd = cmd
	e.mu.Unlock()

	waitErr := cmd.Wait()

	e.mu.Lock()
	e.cmd = nil
	interrupted := e.interrupted
	e.mu.Unlock()

	if interrupted {
		e.dispatchError(u, ErrInterrupted)
		return
	}
	if waitErr != nil {
		e.dispatchError(u, fmt.Errorf("player failed: %w", waitErr))
		return
	}
	if u.OnEnd != nil {
		u.OnEnd()
	}
}

// Pause implements Engine by stopping the player process.
func (e *LocalEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	return e.cmd.Process.Signal(syscall.SIGSTOP)
}

// Resume implements Engine by continuing the player process.
func (e *LocalEngine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	return e.cmd.Process.Signal(syscall.SIGCONT)
}

// Cancel implements Engine. It aborts a synthesis still in flight and
// kills a running player; the utterance's OnError fires with
// ErrInterrupted from the playback goroutine.
func (e *LocalEngine) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.interrupted = true
	if e.cancelSynth != nil {
		e.cancelSynth()
		e.cancelSynth = nil
	}
	if e.cmd != nil && e.cmd.Process != nil {
		// SIGCONT first so a paused player can die.
		_ = e.cmd.Process.Signal(syscall.SIGCONT)
		return e.cmd.Process.Kill()
	}
	return nil
}

func (e *LocalEngine) dispatchError(u *Utterance, err error) {
	if u.OnError != nil {
		u.OnError(err)
	}
}

// saveToTemp spools an audio stream to a temp file and returns its path.
func saveToTemp(stream io.Reader) (string, error) {
	tmpFile, err := os.CreateTemp("", "readapt_*.mp3")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmpFile, stream); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to save audio: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to save audio: %w", err)
	}

	return tmpFile.Name(), nil
}

var _ Engine = (*LocalEngine)(nil)
