package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sanosuguru/go-cruise-reservation/internal/app"
	"github.com/sanosuguru/go-cruise-reservation/internal/application"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
)

// NewSeatsCommand は指定日の空席数を表示するコマンドを作成する
func NewSeatsCommand(rootOpts *RootOptions) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "seats <cruise_id> --date YYYY-MM-DD",
		Short: "指定日に運航するクルーズの空席数を表示する",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				cruiseID, err := parseCruiseID(args[0])
				if err != nil {
					return err
				}
				day, err := parseTime(DateLayout, date, application.ErrInvalidDate)
				if err != nil {
					return err
				}
				n, err := c.Query.AvailableSeatsOn(ctx, cruiseID, day)
				if err != nil {
					return err
				}
				return out.Success(SeatsView{CruiseID: cruiseID, Date: day.Format(DateLayout), Available: n})
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "出航日 (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

// NewPassengersCommand は状態別の乗客数を表示するコマンドを作成する
func NewPassengersCommand(rootOpts *RootOptions) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "passengers <cruise_id> --status R|W|C",
		Short: "クルーズの状態別の乗客数を表示する",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				cruiseID, err := parseCruiseID(args[0])
				if err != nil {
					return err
				}
				st, err := reservation.ParseStatus(status)
				if err != nil {
					return err
				}
				n, err := c.Query.CountPassengers(ctx, cruiseID, st)
				if err != nil {
					return err
				}
				return out.Success(passengersView(cruiseID, st, n))
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "予約状態 (R: 確定, W: キャンセル待ち, C: 繰り上げ確定)")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

// NewCruisesCommand は料金条件でクルーズを一覧表示するコマンドを作成する
func NewCruisesCommand(rootOpts *RootOptions) *cobra.Command {
	var maxCost int
	cmd := &cobra.Command{
		Use:   "cruises --max-cost <cost>",
		Short: "料金が上限未満のクルーズを出航日時とともに一覧表示する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				listings, err := c.Query.CruisesUnderCost(ctx, maxCost)
				if err != nil {
					return err
				}
				return out.Success(newCruiseListView(listings))
			})
		},
	}
	cmd.Flags().IntVar(&maxCost, "max-cost", 0, "料金の上限（1以上）")
	_ = cmd.MarkFlagRequired("max-cost")
	return cmd
}

// NewRepairsCommand は船舶ごとの修理件数を表示するコマンドを作成する
func NewRepairsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repairs",
		Short: "船舶ごとの修理件数を多い順に表示する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				counts, err := c.Query.RepairsPerShip(ctx)
				if err != nil {
					return err
				}
				return out.Success(newRepairListView(counts))
			})
		},
	}
}
