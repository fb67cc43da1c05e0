// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	Long: `Log in against the resource API. On success the session is persisted
(to the session file or valkey, per SESSION_BACKEND) and survives
restarts until you log out.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the persisted session",
	RunE:  runLogout,
}

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var (
	passwdCurrent string
	passwdNew     string
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the password of the logged-in account",
	RunE:  runPasswd,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")
	loginCmd.MarkFlagRequired("email")

	registerCmd.Flags().StringVar(&registerName, "name", "", "display name (required)")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email (required)")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password (prompted when omitted)")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")

	passwdCmd.Flags().StringVar(&passwdCurrent, "current", "", "current password (prompted when omitted)")
	passwdCmd.Flags().StringVar(&passwdNew, "new", "", "new password (prompted when omitted)")
}

// promptValue reads one line from stdin when the flag was left empty.
// Plain line input, no terminal tricks: the client also runs in scripts
// and CI where stdin is a pipe.
func promptValue(flagValue, label string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Printf("%s: ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	password, err := promptValue(loginPassword, "Password")
	if err != nil {
		return err
	}

	start := time.Now()
	u, err := a.auth.Login(ctx, loginEmail, password)
	if err != nil {
		return err
	}
	settle(start)

	fmt.Printf("Logged in as %s <%s>\n", u.Name, u.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	if err := a.auth.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	password, err := promptValue(registerPassword, "Password")
	if err != nil {
		return err
	}

	start := time.Now()
	u, err := a.auth.Register(ctx, registerName, registerEmail, password)
	if err != nil {
		return err
	}
	settle(start)

	fmt.Printf("Registered %s <%s>. Log in with \"quillpress login\".\n", u.Name, u.Email)
	return nil
}

func runPasswd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	current, err := promptValue(passwdCurrent, "Current password")
	if err != nil {
		return err
	}
	next, err := promptValue(passwdNew, "New password")
	if err != nil {
		return err
	}

	start := time.Now()
	if err := a.auth.ChangePassword(ctx, current, next); err != nil {
		return err
	}
	settle(start)

	fmt.Println("Password changed.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	u, ok := a.sessions.User()
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	return nil
}
