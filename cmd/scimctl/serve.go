package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xraph/scimcore/provider"
	"github.com/xraph/scimcore/schema"
	"github.com/xraph/scimcore/server"
	"github.com/xraph/scimcore/storage"
	"github.com/xraph/scimcore/storage/memstore"
	"github.com/xraph/scimcore/storage/sqlstore"
	"github.com/xraph/scimcore/tenant"
)

var (
	serveBaseURL      string
	serveTenantMode   string
	serveSQLiteDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Construct a scimcore server and report its registered resource types",
	Long: `serve wires up the schema registry, an in-memory (or SQLite, with
--sqlite-db) storage backend, and the versioned provider, then reports
what it registered. It does not itself bind an HTTP listener: wiring a
transport is left to the embedding application, per the operation
handler's transport-agnostic contract.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := schema.NewRegistry()
		registry.RegisterCore()

		var store storage.Storage
		backend := "memory"
		if serveSQLiteDBPath != "" {
			db, err := sqlstore.OpenSQLite(serveSQLiteDBPath)
			if err != nil {
				return fmt.Errorf("opening sqlite store at %s: %w", serveSQLiteDBPath, err)
			}
			sqlStore := sqlstore.New(db)
			if err := sqlStore.EnsureSchema(context.Background()); err != nil {
				return fmt.Errorf("preparing sqlite schema: %w", err)
			}
			store = sqlStore
			backend = "sqlite:" + serveSQLiteDBPath
		} else {
			store = memstore.New()
		}
		prov := provider.New(store)
		refBuilder := tenant.NewRefBuilder(tenant.Strategy(serveTenantMode), serveBaseURL)

		srv := server.New(server.Config{
			Registry:   registry,
			Provider:   prov,
			RefBuilder: refBuilder,
			BaseURL:    serveBaseURL,
		})
		srv.RegisterResourceType("User", schema.UserCoreSchema(), []server.Op{
			server.OpCreate, server.OpRead, server.OpReplace, server.OpPatch, server.OpDelete, server.OpList,
		})
		srv.RegisterResourceType("Group", schema.GroupCoreSchema(), []server.Op{
			server.OpCreate, server.OpRead, server.OpReplace, server.OpPatch, server.OpDelete, server.OpList,
		})

		fmt.Println("scimcore server constructed")
		fmt.Println("storage backend:", backend)
		fmt.Println("tenant strategy:", serveTenantMode)
		fmt.Println("base URL:", serveBaseURL)
		fmt.Println("resource types:", srv.ResourceTypes())
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveBaseURL, "base-url", "http://localhost:8080", "base URL used for Location and $ref construction")
	serveCmd.Flags().StringVar(&serveTenantMode, "tenant-strategy", "single", "single, subdomain, or path")
	serveCmd.Flags().StringVar(&serveSQLiteDBPath, "sqlite-db", "", "optional path to a SQLite database for persistent storage")
}
