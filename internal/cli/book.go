package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sanosuguru/go-cruise-reservation/internal/app"
)

// NewBookCommand は予約コマンドを作成する
func NewBookCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "book <customer_id> <cruise_id>",
		Short: "クルーズを予約する",
		Long: `顧客のクルーズ予約を行います。

空席があれば確定（R）、なければキャンセル待ち（W）になります。
キャンセル待ちの顧客が再度予約すると、空席があれば確定（C）に繰り上がります。`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				customerID, err := parseCustomerID(args[0])
				if err != nil {
					return err
				}
				cruiseID, err := parseCruiseID(args[1])
				if err != nil {
					return err
				}
				res, err := c.Booking.Book(ctx, customerID, cruiseID)
				if err != nil {
					return err
				}
				return out.Success(newBookingView(res))
			})
		},
	}
}

// NewPromoteCommand はキャンセル待ちの繰り上げコマンドを作成する
func NewPromoteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "promote [cruise_id]",
		Short: "空席のあるクルーズのキャンセル待ちを繰り上げる",
		Long: `空席のあるクルーズのキャンセル待ちを、予約番号の古い順に空席数まで確定（C）にします。
クルーズ番号を省略すると、繰り上げ可能なすべてのクルーズが対象になります。`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				if len(args) == 0 {
					n, err := c.Booking.PromoteWaitlisted(ctx)
					if err != nil {
						return err
					}
					return out.Success(PromotionView{Promoted: n})
				}
				cruiseID, err := parseCruiseID(args[0])
				if err != nil {
					return err
				}
				n, err := c.Booking.PromoteCruise(ctx, cruiseID)
				if err != nil {
					return err
				}
				return out.Success(PromotionView{CruiseID: &cruiseID, Promoted: n})
			})
		},
	}
}
