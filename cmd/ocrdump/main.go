package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/itsm-a-dev/BetTrackingBot/pkg/ocr"
)

// Runs the multi-pass OCR pipeline on one screenshot and prints every
// candidate's score, then the winning transcript. Useful when a slip
// fails intake and the question is which preprocessing variant lost.
func main() {
	f := flag.String("file", "", "image file to OCR")
	flag.Parse()
	if *f == "" {
		log.Fatalf("-file required")
	}
	data, err := os.ReadFile(*f)
	if err != nil {
		log.Fatalf("read %s: %v", *f, err)
	}
	res, err := ocr.ExtractSlipText(data)
	if err != nil {
		log.Fatalf("ocr error: %v", err)
	}
	for _, c := range res.Candidates {
		fmt.Printf("variant=%-12s rot=%-3d cfg=%-8s score=%.3f len=%d\n",
			c.Variant, c.Rotation, c.Config, c.Score, c.Length)
	}
	fmt.Printf("\nwinner: variant=%s cfg=%s score=%.3f\n\n%s\n",
		res.Variant, res.Config, res.Score, res.Text)
}
