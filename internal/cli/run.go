package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/forPelevin/vidagent/internal/agent"
	"github.com/forPelevin/vidagent/internal/config"
	"github.com/forPelevin/vidagent/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/vidagent/internal/ports/adapters/openrouter"
	"github.com/forPelevin/vidagent/internal/types"
	"github.com/forPelevin/vidagent/internal/usecase"
)

const conversationsDir = "conversations"

func run(cmd *cobra.Command, videoDir string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	outFlag, _ := cmd.Flags().GetString("out")
	modelFlag, _ := cmd.Flags().GetString("model")
	logLevel, _ := cmd.Flags().GetString("log-level")

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return errors.New("OPENROUTER_API_KEY is required (set it in .env)")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if outFlag != "" {
		cfg.OutDir = outFlag
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := openrouter.ValidateBaseURL(cfg.BaseURL, cfg.AllowedHosts); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	absDir, err := filepath.Abs(videoDir)
	if err != nil {
		return err
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return fmt.Errorf("video directory %q: %w", videoDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("video directory %q: not a directory", videoDir)
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:   "vidagent",
		Level:  hclog.LevelFromString(logLevel),
		Output: os.Stderr,
	})

	engine := ffmpeg.New(cfg.FFmpegPath, cfg.AudioSampleRate, log.Named("ffmpeg"))
	chat := openrouter.New(apiKey, cfg.Model, cfg.BaseURL)
	uc := usecase.New(usecase.Deps{
		Engine:        engine,
		Log:           log.Named("usecase"),
		EngineTimeout: cfg.EngineTimeout(),
	})
	ag := agent.New(agent.Deps{
		Chat:  chat,
		Tools: uc,
		Log:   log.Named("agent"),
	}, agent.Options{
		VideoDir:       absDir,
		OutDir:         cfg.OutDir,
		DefaultFrames:  cfg.DefaultFrames,
		DefaultQuality: types.Quality(cfg.DefaultQuality),
	})

	return repl(cmd, ag, absDir)
}

func repl(cmd *cobra.Command, ag *agent.Agent, videoDir string) error {
	out := cmd.OutOrStdout()
	interactive := isatty.IsTerminal(os.Stdin.Fd())

	if interactive {
		fmt.Fprintf(out, "Codec is ready. Working directory: %s\n", videoDir)
		fmt.Fprintln(out, "Type a request, '/save' to save the conversation, or 'quit' to exit.")
	}

	var history []types.ChatMessage
	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return nil
		case line == "/save":
			path, err := agent.SaveHistory(history, conversationsDir)
			if err != nil {
				fmt.Fprintf(out, "could not save conversation: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "conversation saved to %s\n", path)
			continue
		}

		answer, grown, err := ag.Process(context.Background(), line, history)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			history = grown
			continue
		}
		history = grown
		fmt.Fprintln(out, answer)
	}
	return sc.Err()
}
