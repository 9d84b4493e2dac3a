package cli

import (
	"path/filepath"

	"golang.org/x/term"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/api"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/tui"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/logger"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	RunProgram   = tui.Run
	IsTerminal   = term.IsTerminal
	NewLogger    = func(dir string) *logger.HTTPLogger {
		return logger.NewHTTPLogger(
			logger.WithDir(filepath.Join(dir, "logs")),
			logger.WithFilename("agent.log"),
		)
	}
)
