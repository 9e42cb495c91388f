package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"sfentool/internal/transform"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	var err = run()
	if err != nil {
		log.Println(err)
	}
}

func run() error {
	var args = os.Args[1:]
	if len(args) == 0 || args[0] != "transform" {
		return fmt.Errorf("usage: sfentool transform <nudged_static|rescore_fen> [key value]...")
	}
	return transform.Run(context.Background(), transform.NewContext(), args[1:])
}
