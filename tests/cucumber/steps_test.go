package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"ursbench/internal/cli"
)

// featureState holds scenario state for CLI feature tests.
type featureState struct {
	workDir    string
	previousWD string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int
}

// InitializeScenario wires the CLI steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a workspace with a valid configuration$`, state.aWorkspaceWithValidConfig)
	ctx.Step(`^the config is invalid$`, state.theConfigIsInvalid)
	ctx.Step(`^a corpus with (\d+) documents$`, state.aCorpusWithDocuments)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the error output contains "([^"]+)"$`, state.theErrorOutputContains)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
}

// reset prepares a fresh workspace and moves the process into it so
// config discovery works the same way it does for users.
func (s *featureState) reset() error {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}
	s.previousWD = wd

	dir, err := os.MkdirTemp("", "ursbench-cucumber-*")
	if err != nil {
		return fmt.Errorf("mkdtemp: %w", err)
	}
	s.workDir = dir
	return os.Chdir(dir)
}

// cleanup restores the working directory and removes the workspace.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}

func (s *featureState) configPath() string {
	return filepath.Join(s.workDir, ".ursbench.yml")
}

func (s *featureState) aWorkspaceWithValidConfig() error {
	body := `version: 1
corpus:
  dir: "corpus"
folds:
  count: 2
`
	return os.WriteFile(s.configPath(), []byte(body), 0o644)
}

func (s *featureState) theConfigIsInvalid() error {
	return os.WriteFile(s.configPath(), []byte("version: 2\ncorpus:\n  dir: 'corpus'\n"), 0o644)
}

func (s *featureState) aCorpusWithDocuments(count int) error {
	categories := []string{"category_3", "category_4", "category_5"}
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("URS-%03d", i+1)
		dir := filepath.Join(s.workDir, "corpus", categories[i%len(categories)])
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir corpus: %w", err)
		}
		body := fmt.Sprintf(`1. Functional Requirements

- %s shall start within a minute.
- %s shall log every action.
`, id, id)
		if err := os.WriteFile(filepath.Join(dir, id+".md"), []byte(body), 0o644); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
	}
	return nil
}

func (s *featureState) iRunCommand(command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 || fields[0] != "ursbench" {
		return fmt.Errorf("commands must start with ursbench, got %q", command)
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(fields[1:], &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("exit code = %d, stderr:\n%s", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("exit code = 0, stdout:\n%s", s.stdout.String())
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("stdout does not contain %q:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("stderr does not contain %q:\n%s", text, s.stderr.String())
	}
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		if len(row.Cells) == 0 {
			continue
		}
		name := row.Cells[0].Value
		if name == "command" {
			continue
		}
		if !strings.Contains(output, name) {
			return fmt.Errorf("usage does not list %q:\n%s", name, output)
		}
	}
	return nil
}
