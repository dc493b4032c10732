package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-relevance/internal/config"
	"github.com/spf13/cobra"
)

var hashPasswordCost int

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Hash an operator password for AUTH_PASSWORD_HASH",
	Long:  "Produce a bcrypt hash of the operator password, suitable for the AUTH_PASSWORD_HASH environment variable.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashPassword,
}

func init() {
	hashPasswordCmd.Flags().IntVar(&hashPasswordCost, "cost", 12, "bcrypt cost factor (10-14)")
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(_ *cobra.Command, args []string) error {
	if hashPasswordCost < 10 || hashPasswordCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", hashPasswordCost)
	}

	cfg := &config.AuthConfig{BcryptCost: hashPasswordCost}
	hash, err := cfg.HashPassword(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, hash)
	return nil
}
