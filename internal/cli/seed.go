package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sanosuguru/go-cruise-reservation/internal/app"
	"github.com/sanosuguru/go-cruise-reservation/internal/application"
)

// SeedFile は初期データファイル（YAML）の内容
type SeedFile struct {
	Ships     []shipInput     `yaml:"ships"`
	Captains  []captainInput  `yaml:"captains"`
	Cruises   []cruiseInput   `yaml:"cruises"`
	Customers []customerInput `yaml:"customers"`
	Repairs   []repairInput   `yaml:"repairs"`
}

// LoadSeed は YAML を読み込む。未知のキーはエラーにする
func LoadSeed(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s SeedFile
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, fmt.Errorf("初期データの読み込みに失敗: %w", err)
	}
	return &s, nil
}

// Apply は船舶・船長・クルーズ（運航含む）・顧客・修理記録の順に登録する
// 途中で失敗した場合は、それまでに登録した件数とエラーを返す
func (s *SeedFile) Apply(ctx context.Context, fleet *application.FleetService) (SeedView, error) {
	var v SeedView
	for i, in := range s.Ships {
		if _, err := in.add(ctx, fleet); err != nil {
			return v, fmt.Errorf("ships[%d]: %w", i, err)
		}
		v.Ships++
	}
	for i, in := range s.Captains {
		if _, err := in.add(ctx, fleet); err != nil {
			return v, fmt.Errorf("captains[%d]: %w", i, err)
		}
		v.Captains++
	}
	for i, in := range s.Cruises {
		if _, err := in.add(ctx, fleet); err != nil {
			return v, fmt.Errorf("cruises[%d]: %w", i, err)
		}
		v.Cruises++
		v.Sailings++
		for j, sailing := range in.Sailings {
			if _, err := addSailing(ctx, fleet, in.Number, sailing); err != nil {
				return v, fmt.Errorf("cruises[%d].sailings[%d]: %w", i, j, err)
			}
			v.Sailings++
		}
	}
	for i, in := range s.Customers {
		if _, err := in.add(ctx, fleet); err != nil {
			return v, fmt.Errorf("customers[%d]: %w", i, err)
		}
		v.Customers++
	}
	for i, in := range s.Repairs {
		if _, err := in.add(ctx, fleet); err != nil {
			return v, fmt.Errorf("repairs[%d]: %w", i, err)
		}
		v.Repairs++
	}
	return v, nil
}

// NewSeedCommand は初期データ投入コマンドを作成する
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed --file fleet.yaml",
		Short: "YAML ファイルから船舶・船長・クルーズ・顧客・修理記録を登録する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			f, err := os.Open(file)
			if err != nil {
				return out.Fail(WrapExitError(ExitCommandError, "初期データファイルを開けません", err))
			}
			defer f.Close()

			seed, err := LoadSeed(f)
			if err != nil {
				return out.Fail(WrapExitError(ExitCommandError, "初期データファイルが不正です", err))
			}
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				v, err := seed.Apply(ctx, c.Fleet)
				out.VerboseLog("登録済み: %+v", v)
				if err != nil {
					return err
				}
				return out.Success(v)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "初期データの YAML ファイル")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// NewMigrateCommand はスキーマ適用コマンドを作成する
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "データストアにスキーマを適用する",
		Long: `PostgreSQL には migrations/ のマイグレーションを、SQLite には組み込みスキーマを適用します。
適用済みの場合は何もしません。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				return out.Success(MigrateView{Driver: c.DB.DriverName(), Version: c.MigrationVersion})
			})
		},
	}
}
