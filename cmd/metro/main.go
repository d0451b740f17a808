package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type cli struct {
	server  string
	timeout time.Duration
	out     io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}
	root := &cobra.Command{
		Use:           "metro",
		Short:         "Client du serveur metro-cards",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.server, "server", envOr("METRO_SERVER_URL", "http://127.0.0.1:8080"), "URL du serveur (ex: http://127.0.0.1:8080)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Second, "Timeout HTTP")

	root.AddCommand(
		c.getCmd("health", "État du serveur", "/api/v1/health"),
		c.getCmd("version", "Version du serveur", "/api/v1/version"),
		c.getCmd("cards", "Cartes affichées", "/api/v1/cards"),
		c.getCmd("audit", "Audit du temps jusqu'à la première carte", "/api/v1/audit/card"),
		&cobra.Command{
			Use:   "refresh",
			Short: "Rafraîchit toutes les cartes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.do(http.MethodPost, "/api/v1/refresh", nil)
			},
		},
		c.stationsCmd(),
	)
	return root
}

func (c *cli) getCmd(use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.do(http.MethodGet, path, nil)
		},
	}
}

func (c *cli) stationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "Stations sélectionnées",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Liste les stations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.do(http.MethodGet, "/api/v1/stations", nil)
			},
		},
		&cobra.Command{
			Use:     "add KEY LABEL",
			Short:   "Ajoute une station (ex: metros/1/bastille/A \"Bastille, Direction La Défense\")",
			Args:    cobra.MinimumNArgs(2),
			Example: `metro stations add metros/1/nation/R "Nation, Direction Château de Vincennes"`,
			RunE: func(cmd *cobra.Command, args []string) error {
				body, err := json.Marshal(map[string]string{
					"key":   args[0],
					"label": strings.Join(args[1:], " "),
				})
				if err != nil {
					return err
				}
				return c.do(http.MethodPost, "/api/v1/stations", body)
			},
		},
	)
	return cmd
}

func (c *cli) do(method, path string, body []byte) error {
	req, err := http.NewRequest(method, strings.TrimRight(c.server, "/")+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: c.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	var pretty any
	if err := json.Unmarshal(b, &pretty); err == nil {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pretty)
	} else {
		_, _ = c.out.Write(b)
		_, _ = c.out.Write([]byte("\n"))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
