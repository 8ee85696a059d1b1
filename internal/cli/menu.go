package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sanosuguru/go-cruise-reservation/internal/app"
	"github.com/sanosuguru/go-cruise-reservation/internal/application"
	"github.com/sanosuguru/go-cruise-reservation/internal/console"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/captain"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
)

// NewMenuCommand は対話メニューを起動するコマンドを作成する
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "対話メニューで登録・予約・照会を行う",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, c *app.Container, out *OutputFormatter) error {
				p := console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				return NewMenu(p, out, c).Run(ctx)
			})
		},
	}
}

type menuItem struct {
	label  string
	action func(ctx context.Context) error
}

// Menu は番号を選んで操作を実行する対話メニュー
type Menu struct {
	p     *console.Prompter
	out   *OutputFormatter
	c     *app.Container
	items []menuItem
}

func NewMenu(p *console.Prompter, out *OutputFormatter, c *app.Container) *Menu {
	m := &Menu{p: p, out: out, c: c}
	m.items = []menuItem{
		{"船舶を登録", m.addShip},
		{"船長を登録", m.addCaptain},
		{"クルーズを登録", m.addCruise},
		{"顧客を登録", m.addCustomer},
		{"クルーズを予約", m.book},
		{"指定日の空席数を表示", m.seats},
		{"船舶ごとの修理件数を表示", m.repairs},
		{"状態別の乗客数を表示", m.passengers},
		{"料金条件でクルーズを一覧表示", m.cruises},
		{"キャンセル待ちを繰り上げ", m.promote},
	}
	return m
}

// Run は 0 が選ばれるか入力が終わるまでメニューを繰り返す
// 操作のエラーは表示してメニューに戻る。データストア障害の場合のみ中断する
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.p.Println()
		m.p.Println("==== クルーズ予約メニュー ====")
		for i, item := range m.items {
			m.p.Printf("%2d. %s\n", i+1, item.label)
		}
		m.p.Println(" 0. 終了")

		choice, err := m.p.Int("番号を選択", func(n int) error {
			if n < 0 || n > len(m.items) {
				return fmt.Errorf("0〜%d の番号を入力してください", len(m.items))
			}
			return nil
		})
		if errors.Is(err, console.ErrInputClosed) || (err == nil && choice == 0) {
			m.p.Println("終了します")
			return nil
		}
		if err != nil {
			return err
		}

		err = m.items[choice-1].action(ctx)
		switch {
		case errors.Is(err, console.ErrInputClosed):
			m.p.Println("終了します")
			return nil
		case err != nil:
			code, exit := classify(err)
			if exit == ExitCommandError {
				return err
			}
			_ = m.out.Error(code, err.Error())
		}
	}
}

func (m *Menu) addShip(ctx context.Context) error {
	var in shipInput
	var err error
	if in.ID, err = m.p.ID("船舶ID", nil); err != nil {
		return err
	}
	if in.Make, err = m.p.String("メーカー", ship.ValidateMake); err != nil {
		return err
	}
	if in.Model, err = m.p.String("モデル", ship.ValidateModel); err != nil {
		return err
	}
	if in.Age, err = m.p.Int("船齢", ship.ValidateAge); err != nil {
		return err
	}
	if in.Seats, err = m.p.Int("座席数", ship.ValidateSeats); err != nil {
		return err
	}
	return m.show(in.add(ctx, m.c.Fleet))
}

func (m *Menu) addCaptain(ctx context.Context) error {
	var in captainInput
	var err error
	if in.ID, err = m.p.ID("船長ID", nil); err != nil {
		return err
	}
	if in.FullName, err = m.p.String("氏名", captain.ValidateFullName); err != nil {
		return err
	}
	if in.Nationality, err = m.p.String("国籍", captain.ValidateNationality); err != nil {
		return err
	}
	return m.show(in.add(ctx, m.c.Fleet))
}

func (m *Menu) addCruise(ctx context.Context) error {
	number, err := m.p.ID("クルーズ番号", nil)
	if err != nil {
		return err
	}
	cost, err := m.p.Int("料金", cruise.ValidateCost)
	if err != nil {
		return err
	}
	stops, err := m.p.Int("寄港数", func(n int) error {
		if n < 0 {
			return cruise.ErrInvalidNumStops
		}
		return nil
	})
	if err != nil {
		return err
	}
	dep, err := m.p.DateTime("出発日時 (UTC)")
	if err != nil {
		return err
	}
	arr, err := m.arrivalAfter(dep)
	if err != nil {
		return err
	}
	from, err := m.p.String("出発港コード", cruise.ValidatePortCode)
	if err != nil {
		return err
	}
	to, err := m.p.String("到着港コード", cruise.ValidatePortCode)
	if err != nil {
		return err
	}
	shipID, err := m.p.ID("船舶ID", nil)
	if err != nil {
		return err
	}
	captainID, err := m.p.ID("船長ID", nil)
	if err != nil {
		return err
	}

	c := cruise.NewCruise(number, cost, 0, stops, dep, arr, from, to)
	if err := m.c.Fleet.AddCruise(ctx, application.AddCruiseInput{Cruise: c, ShipID: shipID, CaptainID: captainID}); err != nil {
		return err
	}
	return m.out.Success(CreatedView{Entity: "cruise", ID: number})
}

// arrivalAfter は出発日時より後の到着日時が入力されるまで読み直す
func (m *Menu) arrivalAfter(dep time.Time) (time.Time, error) {
	for {
		arr, err := m.p.DateTime("到着日時 (UTC)")
		if err != nil {
			return time.Time{}, err
		}
		if err := cruise.ValidateSchedule(dep, arr); err != nil {
			m.p.Printf("入力エラー: %v\n", err)
			continue
		}
		return arr, nil
	}
}

func (m *Menu) addCustomer(ctx context.Context) error {
	first, err := m.p.String("名", customer.ValidateName)
	if err != nil {
		return err
	}
	last, err := m.p.String("姓", customer.ValidateName)
	if err != nil {
		return err
	}
	gender, err := m.p.Choice("性別", string(customer.GenderFemale), string(customer.GenderMale))
	if err != nil {
		return err
	}
	dob, err := m.p.Date("生年月日")
	if err != nil {
		return err
	}
	address, err := m.p.String("住所", customer.ValidateAddress)
	if err != nil {
		return err
	}
	phone, err := m.p.String("電話番号", customer.ValidatePhone)
	if err != nil {
		return err
	}
	zip, err := m.p.String("郵便番号", customer.ValidateZipCode)
	if err != nil {
		return err
	}

	c := customer.NewCustomer(first, last, customer.Gender(gender), dob, address, phone, zip)
	id, err := m.c.Fleet.AddCustomer(ctx, c)
	if err != nil {
		return err
	}
	return m.out.Success(CreatedView{Entity: "customer", ID: id})
}

func (m *Menu) book(ctx context.Context) error {
	customerID, err := m.p.ID("顧客ID", nil)
	if err != nil {
		return err
	}
	cruiseID, err := m.p.ID("クルーズ番号", nil)
	if err != nil {
		return err
	}
	res, err := m.c.Booking.Book(ctx, customerID, cruiseID)
	if err != nil {
		return err
	}
	return m.out.Success(newBookingView(res))
}

func (m *Menu) seats(ctx context.Context) error {
	cruiseID, err := m.p.ID("クルーズ番号", nil)
	if err != nil {
		return err
	}
	day, err := m.p.Date("出航日")
	if err != nil {
		return err
	}
	n, err := m.c.Query.AvailableSeatsOn(ctx, cruiseID, day)
	if err != nil {
		return err
	}
	return m.out.Success(SeatsView{CruiseID: cruiseID, Date: day.Format(DateLayout), Available: n})
}

func (m *Menu) repairs(ctx context.Context) error {
	counts, err := m.c.Query.RepairsPerShip(ctx)
	if err != nil {
		return err
	}
	return m.out.Success(newRepairListView(counts))
}

func (m *Menu) passengers(ctx context.Context) error {
	cruiseID, err := m.p.ID("クルーズ番号", nil)
	if err != nil {
		return err
	}
	s, err := m.p.Choice("予約状態",
		string(reservation.StatusReserved), string(reservation.StatusWaitlist), string(reservation.StatusConfirmed))
	if err != nil {
		return err
	}
	status := reservation.Status(s)
	n, err := m.c.Query.CountPassengers(ctx, cruiseID, status)
	if err != nil {
		return err
	}
	return m.out.Success(passengersView(cruiseID, status, n))
}

func (m *Menu) cruises(ctx context.Context) error {
	maxCost, err := m.p.Int("料金の上限", func(n int) error {
		if n < 1 {
			return application.ErrInvalidCostThreshold
		}
		return nil
	})
	if err != nil {
		return err
	}
	listings, err := m.c.Query.CruisesUnderCost(ctx, maxCost)
	if err != nil {
		return err
	}
	return m.out.Success(newCruiseListView(listings))
}

func (m *Menu) promote(ctx context.Context) error {
	n, err := m.c.Booking.PromoteWaitlisted(ctx)
	if err != nil {
		return err
	}
	return m.out.Success(PromotionView{Promoted: n})
}

func (m *Menu) show(v CreatedView, err error) error {
	if err != nil {
		return err
	}
	return m.out.Success(v)
}
