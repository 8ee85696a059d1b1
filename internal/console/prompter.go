// Package console は対話入力を検証付きで読み取る
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// 入力日時の書式
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// ErrInputClosed は入力が尽きた（EOF）場合のエラー
var ErrInputClosed = errors.New("入力が終了しました")

// Prompter は1行ずつ入力を読み、検証に失敗した値は再入力を求める
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Println は出力先に1行書き出す
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf は出力先に書式付きで書き出す
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// String は検証を通過するまで文字列を読み直す。前後の空白は取り除く
func (p *Prompter) String(label string, validate func(string) error) (string, error) {
	for {
		line, err := p.readLine(label)
		if err != nil {
			return "", err
		}
		if validate != nil {
			if err := validate(line); err != nil {
				p.reject(err)
				continue
			}
		}
		return line, nil
	}
}

// Int は整数を読み取る
func (p *Prompter) Int(label string, validate func(int) error) (int, error) {
	for {
		line, err := p.readLine(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			p.reject(fmt.Errorf("整数を入力してください: %q", line))
			continue
		}
		if validate != nil {
			if err := validate(n); err != nil {
				p.reject(err)
				continue
			}
		}
		return n, nil
	}
}

// ID は0以上の識別子を読み取る
func (p *Prompter) ID(label string, validate func(int64) error) (int64, error) {
	for {
		line, err := p.readLine(label)
		if err != nil {
			return 0, err
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			p.reject(fmt.Errorf("整数を入力してください: %q", line))
			continue
		}
		if id < 0 {
			p.reject(errors.New("0以上の値を入力してください"))
			continue
		}
		if validate != nil {
			if err := validate(id); err != nil {
				p.reject(err)
				continue
			}
		}
		return id, nil
	}
}

// Date は YYYY-MM-DD 形式の日付を UTC で読み取る
func (p *Prompter) Date(label string) (time.Time, error) {
	return p.time(label, DateLayout)
}

// DateTime は YYYY-MM-DD HH:MM 形式の日時を UTC で読み取る
func (p *Prompter) DateTime(label string) (time.Time, error) {
	return p.time(label, DateTimeLayout)
}

func (p *Prompter) time(label, layout string) (time.Time, error) {
	for {
		line, err := p.readLine(label)
		if err != nil {
			return time.Time{}, err
		}
		t, err := time.ParseInLocation(layout, line, time.UTC)
		if err != nil {
			p.reject(fmt.Errorf("%s の形式で入力してください", layout))
			continue
		}
		return t, nil
	}
}

// Choice は options のいずれかを読み取る（大文字小文字は区別しない）
// 戻り値は options に登録された表記
func (p *Prompter) Choice(label string, options ...string) (string, error) {
	prompt := fmt.Sprintf("%s (%s)", label, strings.Join(options, "/"))
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		for _, o := range options {
			if strings.EqualFold(line, o) {
				return o, nil
			}
		}
		p.reject(fmt.Errorf("%s のいずれかを入力してください", strings.Join(options, ", ")))
	}
}

func (p *Prompter) readLine(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("入力の読み取りに失敗: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompter) reject(err error) {
	fmt.Fprintf(p.out, "入力エラー: %v\n", err)
}
