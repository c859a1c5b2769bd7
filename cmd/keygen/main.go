package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	var cost int
	flag.IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost (4-31)")
	flag.Parse()

	fmt.Println("=== Generate Admin Key Hash ===")

	fmt.Print("Enter admin key: ")
	key, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading key")
		os.Exit(1)
	}
	if len(key) < 12 {
		fmt.Println("Error: admin key must be at least 12 characters")
		os.Exit(1)
	}

	fmt.Print("Confirm admin key: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading confirmation")
		os.Exit(1)
	}
	if string(key) != string(confirm) {
		fmt.Println("Error: keys do not match")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword(key, cost)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Single quotes: bcrypt hashes contain $ characters.
	fmt.Println("\nAdd this to your environment:")
	fmt.Printf("ADMIN_KEY_HASH='%s'\n", hash)
}
