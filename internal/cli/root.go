// Package cli はクルーズ予約のコマンドラインインターフェースを提供する
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/sanosuguru/go-cruise-reservation/internal/app"
	"github.com/sanosuguru/go-cruise-reservation/internal/config"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
)

// RootOptions は全コマンド共通のフラグ
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Store      string // "postgres" | "sqlite"、空なら DB_DRIVER
	SQLitePath string
}

var (
	ValidFormats = []string{"text", "json"}
	ValidStores  = []string{config.DriverPostgres, config.DriverSQLite}
)

// NewRootCommand は cruisectl のルートコマンドを作成する
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "cruisectl",
		Short:         "クルーズ予約の管理ツール",
		Long:          "船舶・船長・クルーズ・顧客の登録と、クルーズ予約（確定／キャンセル待ち／繰り上げ）を行います。",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("--format は %v のいずれかです: %q", ValidFormats, opts.Format))
			}
			if opts.Store != "" && !slices.Contains(ValidStores, opts.Store) {
				return NewExitError(ExitCommandError, fmt.Sprintf("--store は %v のいずれかです: %q", ValidStores, opts.Store))
			}
			logger.Set(logger.NewCLILogger(opts.Verbose))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "詳細ログを出力する")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "出力形式 (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Store, "store", "", "データストア (postgres|sqlite)。省略時は DB_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite-path", "", "SQLite のファイルパス。省略時は SQLITE_PATH")

	cmd.AddCommand(NewBookCommand(opts))
	cmd.AddCommand(NewPromoteCommand(opts))
	cmd.AddCommand(NewSeatsCommand(opts))
	cmd.AddCommand(NewPassengersCommand(opts))
	cmd.AddCommand(NewCruisesCommand(opts))
	cmd.AddCommand(NewRepairsCommand(opts))
	cmd.AddCommand(NewAddShipCommand(opts))
	cmd.AddCommand(NewAddCaptainCommand(opts))
	cmd.AddCommand(NewAddCruiseCommand(opts))
	cmd.AddCommand(NewAddSailingCommand(opts))
	cmd.AddCommand(NewAddCustomerCommand(opts))
	cmd.AddCommand(NewAddRepairCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewConsumeEventsCommand(opts))
	cmd.AddCommand(NewMenuCommand(opts))

	return cmd
}

// loadConfig は環境変数の設定にフラグの指定を重ねる
func (o *RootOptions) loadConfig() *config.Config {
	cfg := config.Load()
	if o.Store != "" {
		cfg.Database.Driver = o.Store
	}
	if o.SQLitePath != "" {
		cfg.Database.SQLitePath = o.SQLitePath
	}
	return cfg
}

// open はデータストアに接続してサービスを組み立てる
// 接続できない場合は ExitCommandError を返す
func (o *RootOptions) open(ctx context.Context) (*app.Container, error) {
	cfg := o.loadConfig()
	c, err := app.New(ctx, cfg, nil)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "データストアを開けません", err)
	}
	return c, nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// run はデータストアを開いて fn を実行し、エラーを出力形式に合わせて返す
func (o *RootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container, out *OutputFormatter) error) error {
	out := o.formatter(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := o.open(ctx)
	if err != nil {
		return out.Fail(err)
	}
	defer c.Close()

	if err := fn(ctx, c, out); err != nil {
		return out.Fail(err)
	}
	return nil
}
