// klingnet-wallet restores Klingnet keys from mobile wallet recovery
// phrases and keeps them in an encrypted local keystore.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/Klingon-tech/klingnet-wallet/config"
	"github.com/Klingon-tech/klingnet-wallet/internal/log"
	"github.com/Klingon-tech/klingnet-wallet/internal/rpcclient"
	"github.com/Klingon-tech/klingnet-wallet/internal/wallet"
	"github.com/Klingon-tech/klingnet-wallet/pkg/mnemonic"
	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
	"golang.org/x/term"
)

// app carries resolved configuration into subcommands.
type app struct {
	cfg *config.Config
	out *output
}

func main() {
	cfg, flags, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fatal("%v", err)
	}
	if flags.Help {
		config.PrintUsage(os.Stdout)
		return
	}
	if flags.Version {
		fmt.Printf("klingnet-wallet version %s\n", config.Version)
		return
	}
	if len(flags.Args) == 0 {
		config.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	a := &app{cfg: cfg, out: newOutput(cfg.Output.Format, os.Stdout)}
	cmd, cmdArgs := flags.Args[0], flags.Args[1:]
	log.CLI.Debug().
		Str("command", cmd).
		Str("network", string(cfg.Network)).
		Str("keystore", cfg.KeystoreDir()).
		Msg("Running command")

	switch cmd {
	case "restore":
		a.cmdRestore(cmdArgs)
	case "inspect":
		a.cmdInspect(cmdArgs)
	case "list":
		a.cmdList(cmdArgs)
	case "info":
		a.cmdInfo(cmdArgs)
	case "sign":
		a.cmdSign(cmdArgs)
	case "delete":
		a.cmdDelete(cmdArgs)
	case "balance":
		a.cmdBalance(cmdArgs)
	case "help":
		config.PrintUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		config.PrintUsage(os.Stderr)
		os.Exit(1)
	}
}

func (a *app) openKeystore() *wallet.Keystore {
	ks, err := wallet.OpenKeystore(a.cfg.KeystoreDir())
	if err != nil {
		fatal("open keystore: %v", err)
	}
	return ks
}

func (a *app) deriveOptions(account, index uint) wallet.DeriveOptions {
	acct, err := parseUint32Flag("account", account)
	if err != nil {
		fatal("%v", err)
	}
	idx, err := parseUint32Flag("index", index)
	if err != nil {
		fatal("%v", err)
	}
	kt := a.cfg.Wallet.KeyType
	if !kt.Hierarchical() && (acct != 0 || idx != 0) {
		fatal("--account and --index need --key-type %s", wallet.KeyBIP32)
	}
	return wallet.DeriveOptions{KeyType: kt, Account: acct, Index: idx}
}

// ── restore ─────────────────────────────────────────────────────────────

func (a *app) cmdRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	words := fs.String("words", "", "Recovery phrase (12 words, quoted)")
	file := fs.String("file", "", "Read the phrase from a file (- for stdin)")
	account := fs.Uint("account", 0, "BIP-44 account (bip32 keys only)")
	index := fs.Uint("index", 0, "BIP-44 address index (bip32 keys only)")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: klingnet-wallet restore --name <name> [--words \"...\" | --file <path>] [--account 0] [--index 0]")
	}
	if err := wallet.ValidateName(*name); err != nil {
		fatal("%v", err)
	}
	opts := a.deriveOptions(*account, *index)

	phrase, err := readPhrase(*words, *file, os.Stdin)
	if err != nil {
		fatal("%v", err)
	}
	entropy, err := wallet.DecodePhrase(phrase, mnemonic.English)
	if err != nil {
		fatal("decode phrase: %s", describeDecodeError(err, phrase))
	}
	defer entropy.Wipe()

	ks := a.openKeystore()
	defer ks.Close()
	if _, err := ks.Info(*name); err == nil {
		ks.Close()
		fatal("wallet %q already exists", *name)
	}

	password := readNewPassword()
	defer wipe(password)

	info, err := ks.Create(*name, entropy, opts, a.cfg.Network, password, a.cfg.Wallet.Argon.Params())
	if err != nil {
		ks.Close()
		fatal("store wallet: %v", err)
	}
	if err := a.out.record(info, walletRows(info)); err != nil {
		fatal("print: %v", err)
	}
}

// ── inspect ─────────────────────────────────────────────────────────────

func (a *app) cmdInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	words := fs.String("words", "", "Recovery phrase (12 words, quoted)")
	file := fs.String("file", "", "Read the phrase from a file (- for stdin)")
	account := fs.Uint("account", 0, "BIP-44 account (bip32 keys only)")
	index := fs.Uint("index", 0, "BIP-44 address index (bip32 keys only)")
	showEntropy := fs.Bool("show-entropy", false, "Also print the decoded entropy (secret)")
	fs.Parse(args)

	opts := a.deriveOptions(*account, *index)
	phrase, err := readPhrase(*words, *file, os.Stdin)
	if err != nil {
		fatal("%v", err)
	}
	entropy, err := wallet.DecodePhrase(phrase, mnemonic.English)
	if err != nil {
		fatal("decode phrase: %s", describeDecodeError(err, phrase))
	}
	defer entropy.Wipe()

	kp, err := wallet.Derive(entropy, opts)
	if err != nil {
		fatal("%v", err)
	}
	defer kp.Zero()
	addr, err := kp.Address(a.cfg.Network)
	if err != nil {
		fatal("address: %v", err)
	}

	view := inspectView{
		Network:     string(a.cfg.Network),
		KeyType:     string(kp.KeyType()),
		Address:     addr.String(),
		PublicKey:   fmt.Sprintf("%x", kp.PublicKey()),
		Fingerprint: kp.Fingerprint().String(),
	}
	if kp.KeyType().Hierarchical() {
		view.Path = derivationPath(kp.Account(), kp.Index())
	}
	if *showEntropy {
		view.Entropy = entropy.Base58()
	}
	if err := a.out.record(view, view.rows()); err != nil {
		fatal("print: %v", err)
	}
}

// ── list / info ─────────────────────────────────────────────────────────

func (a *app) cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Parse(args)

	ks := a.openKeystore()
	defer ks.Close()

	list, err := ks.List()
	if err != nil {
		ks.Close()
		fatal("list wallets: %v", err)
	}
	if len(list) == 0 && a.cfg.Output.Format != config.FormatJSON {
		fmt.Println("No wallets found.")
		return
	}
	if list == nil {
		list = []wallet.WalletInfo{}
	}
	header, rows := walletListRows(list)
	if err := a.out.table(list, header, rows); err != nil {
		fatal("print: %v", err)
	}
}

func (a *app) cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: klingnet-wallet info --wallet <name>")
	}

	ks := a.openKeystore()
	defer ks.Close()

	info, err := ks.Info(*name)
	if err != nil {
		ks.Close()
		fatal("%v", err)
	}
	if err := a.out.record(info, walletRows(info)); err != nil {
		fatal("print: %v", err)
	}
}

// ── sign ────────────────────────────────────────────────────────────────

func (a *app) cmdSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	message := fs.String("message", "", "Message to sign")
	messageFile := fs.String("message-file", "", "Read the message from a file")
	fs.Parse(args)

	if *name == "" || (*message == "") == (*messageFile == "") {
		fatal("Usage: klingnet-wallet sign --wallet <name> (--message <text> | --message-file <path>)")
	}

	msg := []byte(*message)
	if *messageFile != "" {
		data, err := os.ReadFile(*messageFile)
		if err != nil {
			fatal("read message: %v", err)
		}
		msg = data
	}

	ks := a.openKeystore()
	defer ks.Close()

	password, err := readPassword("Enter password: ")
	if err != nil {
		ks.Close()
		fatal("read password: %v", err)
	}
	kp, info, err := ks.Unlock(*name, password)
	wipe(password)
	if err != nil {
		ks.Close()
		fatal("unlock wallet: %v", err)
	}
	defer kp.Zero()

	sig, err := kp.Sign(msg)
	if err != nil {
		ks.Close()
		fatal("sign: %v", err)
	}
	view := newSignView(*name, info, kp.PublicKey(), sig)
	if err := a.out.record(view, view.rows()); err != nil {
		fatal("print: %v", err)
	}
}

// ── delete ──────────────────────────────────────────────────────────────

func (a *app) cmdDelete(args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	yes := fs.Bool("yes", false, "Do not ask for confirmation")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: klingnet-wallet delete --wallet <name> [--yes]")
	}

	ks := a.openKeystore()
	defer ks.Close()

	info, err := ks.Info(*name)
	if err != nil {
		ks.Close()
		fatal("%v", err)
	}
	if !*yes {
		fmt.Fprintf(os.Stderr, "Delete wallet %q (%s)? The phrase is needed to restore it.\n", info.Name, info.Address)
		fmt.Fprint(os.Stderr, "Type the wallet name to confirm: ")
		answer, err := readLine(os.Stdin)
		if err != nil || answer != *name {
			ks.Close()
			fatal("aborted")
		}
	}
	if err := ks.Delete(*name); err != nil {
		ks.Close()
		fatal("delete wallet: %v", err)
	}
	fmt.Printf("Wallet deleted: %s\n", *name)
}

// ── balance ─────────────────────────────────────────────────────────────

func (a *app) cmdBalance(args []string) {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	address := fs.String("address", "", "Address to query instead of a stored wallet")
	fs.Parse(args)

	if (*name == "") == (*address == "") {
		fatal("Usage: klingnet-wallet balance (--wallet <name> | --address <addr>)")
	}

	addr := *address
	if addr != "" {
		parsed, err := types.ParseAddress(addr)
		if err != nil {
			fatal("invalid address: %v", err)
		}
		if parsed.Network != a.cfg.Network {
			fatal("address is for %s, not %s", parsed.Network, a.cfg.Network)
		}
	} else {
		ks := a.openKeystore()
		info, err := ks.Info(*name)
		ks.Close()
		if err != nil {
			fatal("%v", err)
		}
		addr = info.Address.String()
	}

	if a.cfg.RPC.URL == "" {
		fatal("rpc.url is not set")
	}
	timeout := time.Duration(a.cfg.RPC.Timeout) * time.Second
	client := rpcclient.NewWithTimeout(a.cfg.RPC.URL, timeout)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := client.GetBalance(ctx, addr)
	if err != nil {
		cancel()
		fatal("%v (is klingnetd running at %s?)", err, a.cfg.RPC.URL)
	}
	if err := a.out.record(res, balanceRows(res)); err != nil {
		fatal("print: %v", err)
	}
}

// ── Password helpers ────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// readNewPassword prompts twice and requires a non-empty match.
func readNewPassword() []byte {
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if len(password) == 0 {
		fatal("password must not be empty")
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	defer wipe(confirm)
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}
	return password
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
