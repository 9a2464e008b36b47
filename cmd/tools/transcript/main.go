// Command transcript inspects and exports stored dialogue transcripts
// without going through the HTTP server.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/elenchus/socratic-tutor/backend/internal/config"
	"github.com/elenchus/socratic-tutor/backend/internal/export"
	"github.com/elenchus/socratic-tutor/backend/internal/history"
	"github.com/elenchus/socratic-tutor/backend/internal/model/article"
	"github.com/elenchus/socratic-tutor/backend/internal/model/identity"
	"github.com/elenchus/socratic-tutor/backend/internal/model/persona"
)

func main() {
	app := &cli.App{
		Name:  "transcript",
		Usage: "Inspect and export stored dialogue transcripts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history-dir",
				Usage: "History store directory (defaults to HISTORY_DIR or ~/.socratic-tutor)",
			},
		},
		Commands: []*cli.Command{
			showCmd(),
			exportCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openStore(c *cli.Context) (*history.SQLiteStore, error) {
	dir := c.String("history-dir")
	if dir == "" {
		dir = config.MustHistoryDir()
	}
	return history.OpenSQLite(dir)
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the stored turns for an identity",
		ArgsUsage: "<identity-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one identity id")
			}

			store, err := openStore(c)
			if err != nil {
				return err
			}
			defer store.Close()

			turns, err := store.Load(c.Args().First())
			if err != nil {
				return err
			}
			for i, turn := range turns {
				fmt.Printf("%3d %-8s %s\n", i+1, turn.Speaker, turn.Text)
			}
			return nil
		},
	}
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Render an identity's transcript as a portable document",
		ArgsUsage: "<identity-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Student display name (defaults to the identity id)"},
			&cli.StringFlag{Name: "persona", Value: "ai_tutor", Usage: "Persona id"},
			&cli.StringFlag{Name: "reading", Value: "rational-analysis", Usage: "Article id"},
			&cli.StringFlag{Name: "format", Value: "text", Usage: "Output format: text|html"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (defaults to stdout)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one identity id")
			}
			identityID := c.Args().First()

			personaStore := persona.NewMemoryStore(persona.Seed())
			articleStore := article.NewMemoryStore(article.Seed())

			p, ok := personaStore.FindByID(c.String("persona"))
			if !ok {
				return fmt.Errorf("persona %q not found", c.String("persona"))
			}
			a, ok := articleStore.FindByID(c.String("reading"))
			if !ok {
				return fmt.Errorf("article %q not found", c.String("reading"))
			}

			store, err := openStore(c)
			if err != nil {
				return err
			}
			defer store.Close()

			turns, err := store.Load(identityID)
			if err != nil {
				return err
			}

			name := c.String("name")
			if name == "" {
				name = identityID
			}

			doc := export.BuildDocument(export.Input{
				Identity:   identity.Identity{ID: identityID, DisplayName: name},
				Article:    a,
				Persona:    p,
				Turns:      turns,
				ExportedAt: time.Now(),
			})

			var output []byte
			switch c.String("format") {
			case "text":
				output = []byte(doc.Text())
			case "html":
				output, err = doc.HTML()
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported format %q", c.String("format"))
			}

			if out := c.String("out"); out != "" {
				return os.WriteFile(out, output, 0o600)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}
}
