// tablelab is a terminal notebook for browsing and analyzing tables in
// relational databases. It can run locally or as an SSH server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tablelab/tablelab/internal/cli"
	"github.com/tablelab/tablelab/internal/config"
	"github.com/tablelab/tablelab/internal/database"
	"github.com/tablelab/tablelab/internal/history"
	"github.com/tablelab/tablelab/internal/server"
	"github.com/tablelab/tablelab/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	serveMode := flag.Bool("serve", false, "run SSH server mode (requires -config)")
	configPath := flag.String("config", "", "path to config file (required for serve mode)")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tablelab %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", buildDate)
		os.Exit(0)
	}

	if *serveMode {
		if *configPath == "" {
			log.Fatal("serve mode requires -config flag")
		}
		if err := runServe(*configPath); err != nil {
			log.Fatalf("serve error: %v", err)
		}
		return
	}

	// Local mode - require path argument
	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	pathArg := args[0]
	cmdArgs := args[1:] // Remaining args are command + args

	if len(cmdArgs) > 0 {
		// CLI mode: run command and exit
		if err := runLocalCLI(pathArg, cmdArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	} else {
		// TUI mode: interactive
		if err := runLocalTUI(pathArg); err != nil {
			log.Fatalf("TUI error: %v", err)
		}
	}
}

func printUsage() {
	fmt.Println("tablelab - terminal notebook for relational data")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tablelab <path>                      Interactive notebook TUI")
	fmt.Println("  tablelab <path> <command> [args]     CLI mode (run and exit)")
	fmt.Println("  tablelab -serve -config <file>       SSH server mode")
	fmt.Println()
	fmt.Println("Local mode examples:")
	fmt.Println("  tablelab flights.db                  Open database in TUI")
	fmt.Println("  tablelab ./databases/                Open all .db files in directory")
	fmt.Println("  tablelab flights.db tables flights   List tables")
	fmt.Println("  tablelab flights.db pie flights sflight carrid")
	fmt.Println()
	fmt.Println("SSH server example:")
	fmt.Println("  tablelab -serve -config config.yaml")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

// initLocal builds a database manager over a path argument.
func initLocal(pathArg string) (*database.Manager, *config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Databases = []config.DatabaseSource{{
		Path:        pathArg,
		Description: "Local database",
	}}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database manager: %w", err)
	}

	if err := dbManager.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start database manager: %w", err)
	}

	return dbManager, cfg, nil
}

// runLocalCLI runs a CLI command in local mode.
func runLocalCLI(pathArg string, cmdArgs []string) error {
	dbManager, cfg, err := initLocal(pathArg)
	if err != nil {
		return err
	}
	defer dbManager.Stop()

	// No history store in local CLI mode
	handler := cli.NewHandler(dbManager, nil, cfg.PreviewRows(), version)

	ctx := cli.NewLocalContext(cmdArgs, os.Stdout, os.Stderr)
	return handler.HandleLocal(ctx)
}

// runLocalTUI runs the interactive notebook in local mode.
func runLocalTUI(pathArg string) error {
	dbManager, cfg, err := initLocal(pathArg)
	if err != nil {
		return err
	}
	defer dbManager.Stop()

	sources := dbManager.ListSources()
	if len(sources) == 0 {
		return fmt.Errorf("no databases found at %s", pathArg)
	}
	source := sources[0]

	conn, err := dbManager.OpenConnection(source.Path)
	if err != nil {
		return err
	}

	width, height := 80, 24
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
	}

	app := tui.NewApp(conn, source.Alias, cfg.PreviewRows(), width, height)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// runServe runs the SSH server mode.
func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	historyStore, err := history.NewStore(cfg.GetDataDir())
	if err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}
	defer historyStore.Close()

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database manager: %w", err)
	}

	if err := dbManager.Start(); err != nil {
		return fmt.Errorf("failed to start database manager: %w", err)
	}
	defer dbManager.Stop()

	// Config watcher for hot-reloading database sources
	configWatcher, err := config.NewWatcher(cfg)
	if err != nil {
		log.Printf("Warning: Failed to create config watcher: %v", err)
	} else {
		configWatcher.OnReload(func(newCfg *config.Config) {
			log.Println("Config reloaded, updating sources...")
			dbManager.Discovery().UpdateSources(newCfg.Databases)
		})
		if err := configWatcher.Start(); err != nil {
			log.Printf("Warning: Failed to start config watcher: %v", err)
		} else {
			defer configWatcher.Stop()
		}
	}

	cliHandler := cli.NewHandler(dbManager, historyStore, cfg.PreviewRows(), version)

	sshServer := server.NewServer(cfg, dbManager, historyStore)
	sshServer.SetCLIHandler(cliHandler.Handle)
	sshServer.SetTUIHandler(tui.Handler(dbManager, cfg.PreviewRows()))

	return sshServer.Start()
}
