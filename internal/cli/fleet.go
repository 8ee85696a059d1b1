package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sanosuguru/go-cruise-reservation/internal/app"
)

// NewAddShipCommand は船舶登録コマンドを作成する
func NewAddShipCommand(rootOpts *RootOptions) *cobra.Command {
	var in shipInput
	cmd := &cobra.Command{
		Use:   "add-ship",
		Short: "船舶を登録する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				v, err := in.add(ctx, c.Fleet)
				if err != nil {
					return err
				}
				return out.Success(v)
			})
		},
	}
	f := cmd.Flags()
	f.Int64Var(&in.ID, "id", 0, "船舶ID（0以上）")
	f.StringVar(&in.Make, "make", "", "メーカー（32文字以内）")
	f.StringVar(&in.Model, "model", "", "モデル（64文字以内）")
	f.IntVar(&in.Age, "age", 0, "船齢")
	f.IntVar(&in.Seats, "seats", 0, "座席数（1〜500）")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// NewAddCaptainCommand は船長登録コマンドを作成する
func NewAddCaptainCommand(rootOpts *RootOptions) *cobra.Command {
	var in captainInput
	cmd := &cobra.Command{
		Use:   "add-captain",
		Short: "船長を登録する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				v, err := in.add(ctx, c.Fleet)
				if err != nil {
					return err
				}
				return out.Success(v)
			})
		},
	}
	f := cmd.Flags()
	f.Int64Var(&in.ID, "id", 0, "船長ID（0以上）")
	f.StringVar(&in.FullName, "name", "", "氏名（128文字以内、数字不可）")
	f.StringVar(&in.Nationality, "nationality", "", "国籍（24文字以内、数字不可）")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// NewAddCruiseCommand はクルーズ登録コマンドを作成する
func NewAddCruiseCommand(rootOpts *RootOptions) *cobra.Command {
	var in cruiseInput
	cmd := &cobra.Command{
		Use:   "add-cruise",
		Short: "クルーズを登録し、船舶と船長を割り当てる",
		Long: `クルーズを登録し、船舶と船長を割り当てます。
出発・到着日時は最初の運航スケジュールとしても登録されます。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				v, err := in.add(ctx, c.Fleet)
				if err != nil {
					return err
				}
				return out.Success(v)
			})
		},
	}
	f := cmd.Flags()
	f.Int64Var(&in.Number, "number", 0, "クルーズ番号（0以上）")
	f.IntVar(&in.Cost, "cost", 0, "料金（1以上）")
	f.IntVar(&in.NumStops, "stops", 0, "寄港数")
	f.StringVar(&in.Departure, "departure", "", "出発日時 (YYYY-MM-DD HH:MM, UTC)")
	f.StringVar(&in.Arrival, "arrival", "", "到着日時 (YYYY-MM-DD HH:MM, UTC)")
	f.StringVar(&in.DeparturePort, "from", "", "出発港コード（英大文字5文字）")
	f.StringVar(&in.ArrivalPort, "to", "", "到着港コード（英大文字5文字）")
	f.Int64Var(&in.ShipID, "ship", 0, "船舶ID")
	f.Int64Var(&in.CaptainID, "captain", 0, "船長ID")
	for _, name := range []string{"number", "ship", "captain"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// NewAddSailingCommand は既存クルーズに運航日を追加するコマンドを作成する
func NewAddSailingCommand(rootOpts *RootOptions) *cobra.Command {
	var in sailingInput
	cmd := &cobra.Command{
		Use:   "add-sailing <cruise_id>",
		Short: "既存のクルーズに運航スケジュールを追加する",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				cruiseID, err := parseCruiseID(args[0])
				if err != nil {
					return err
				}
				v, err := addSailing(ctx, c.Fleet, cruiseID, in)
				if err != nil {
					return err
				}
				return out.Success(v)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Departure, "departure", "", "出発日時 (YYYY-MM-DD HH:MM, UTC)")
	f.StringVar(&in.Arrival, "arrival", "", "到着日時 (YYYY-MM-DD HH:MM, UTC)")
	return cmd
}

// NewAddCustomerCommand は顧客登録コマンドを作成する。顧客IDは採番される
func NewAddCustomerCommand(rootOpts *RootOptions) *cobra.Command {
	var in customerInput
	cmd := &cobra.Command{
		Use:   "add-customer",
		Short: "顧客を登録する（顧客IDは自動採番）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				v, err := in.add(ctx, c.Fleet)
				if err != nil {
					return err
				}
				return out.Success(v)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.FirstName, "first-name", "", "名（24文字以内、数字不可）")
	f.StringVar(&in.LastName, "last-name", "", "姓（24文字以内、数字不可）")
	f.StringVar(&in.Gender, "gender", "", "性別 (F|M)")
	f.StringVar(&in.DateOfBirth, "dob", "", "生年月日 (YYYY-MM-DD)")
	f.StringVar(&in.Address, "address", "", "住所（256文字以内）")
	f.StringVar(&in.Phone, "phone", "", "電話番号（数字10桁）")
	f.StringVar(&in.ZipCode, "zip", "", "郵便番号（数字1〜10桁）")
	return cmd
}

// NewAddRepairCommand は修理記録の登録コマンドを作成する
func NewAddRepairCommand(rootOpts *RootOptions) *cobra.Command {
	var in repairInput
	cmd := &cobra.Command{
		Use:   "add-repair",
		Short: "船舶の修理記録を登録する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				v, err := in.add(ctx, c.Fleet)
				if err != nil {
					return err
				}
				return out.Success(v)
			})
		},
	}
	f := cmd.Flags()
	f.Int64Var(&in.ID, "id", 0, "修理ID（0以上）")
	f.StringVar(&in.Date, "date", "", "修理日 (YYYY-MM-DD)")
	f.StringVar(&in.Code, "code", "", "修理コード")
	f.Int64Var(&in.ShipID, "ship", 0, "船舶ID")
	f.Int64Var(&in.CaptainID, "captain", 0, "船長ID")
	for _, name := range []string{"id", "ship", "captain"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
