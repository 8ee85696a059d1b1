package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sanosuguru/go-cruise-reservation/internal/cli"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
)

func main() {
	err := cli.NewRootCommand().Execute()
	_ = logger.Sync()
	if err != nil {
		// コマンド内で出力済みのエラーは ExitError で返る
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Err == nil {
			fmt.Fprintln(os.Stderr, "エラー:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
