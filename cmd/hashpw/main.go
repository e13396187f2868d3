package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Generates the bcrypt hash for the operator password so it can be put
// in config.yaml or OPERATOR_PASSWORD_HASH without storing plaintext.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: go run ./cmd/hashpw <password>")
		os.Exit(2)
	}
	hpw, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	fmt.Println(string(hpw))
}
