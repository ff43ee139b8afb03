package main

import (
	"fmt"
	"os"

	"github.com/danmuck/spellctl/internal/logging"
	"github.com/danmuck/spellctl/internal/spellcheck"
)

func main() {
	logging.ConfigureRuntime()

	cfg, err := resolveServiceConfig(os.Args[1:])
	if err != nil {
		fatalf("%v", err)
	}

	svc := spellcheck.NewServiceWithConfig(cfg)
	code, err := svc.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spellctl: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "spellctl: "+format+"\n", args...)
	os.Exit(2)
}
