// Command geodesh evaluates geometry scripts: a file argument, or stdin when
// none is given, and prints the value of the last expression.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"geode/src/shell"
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	var (
		source []byte
		err    error
	)
	switch flag.NArg() {
	case 0:
		source, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("read stdin: %v", err)
		}
	case 1:
		source, err = os.ReadFile(flag.Arg(0))
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
	default:
		log.Fatalf("usage: geodesh [script.zy]")
	}

	out, err := shell.NewEngine().Eval(string(source))
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(out)
}
