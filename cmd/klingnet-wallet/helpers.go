package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Klingon-tech/klingnet-wallet/config"
	"github.com/Klingon-tech/klingnet-wallet/internal/rpcclient"
	"github.com/Klingon-tech/klingnet-wallet/internal/wallet"
	"github.com/Klingon-tech/klingnet-wallet/pkg/mnemonic"
	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// maxPhraseBytes bounds phrase input read from files or stdin.
const maxPhraseBytes = 4096

// ── Phrase input ────────────────────────────────────────────────────────

// readPhrase returns the recovery phrase from --words, --file (or "-" for
// stdin), or an interactive prompt.
func readPhrase(words, file string, stdin *os.File) ([]string, error) {
	switch {
	case words != "" && file != "":
		return nil, fmt.Errorf("use either --words or --file, not both")
	case words != "":
		return strings.Fields(words), nil
	case file == "-":
		return readPhraseFrom(stdin)
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open phrase file: %w", err)
		}
		defer f.Close()
		return readPhraseFrom(f)
	}

	if !term.IsTerminal(int(stdin.Fd())) {
		return readPhraseFrom(stdin)
	}
	fmt.Fprint(os.Stderr, "Enter recovery phrase (input hidden): ")
	line, err := term.ReadPassword(int(stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read phrase: %w", err)
	}
	defer wipe(line)
	return phraseFields(line)
}

// readPhraseFrom reads whitespace-separated words from r.
func readPhraseFrom(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPhraseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read phrase: %w", err)
	}
	defer wipe(data)
	if len(data) > maxPhraseBytes {
		return nil, fmt.Errorf("phrase input larger than %d bytes", maxPhraseBytes)
	}
	return phraseFields(data)
}

func phraseFields(data []byte) ([]string, error) {
	words := strings.Fields(string(data))
	if len(words) == 0 {
		return nil, fmt.Errorf("no words entered")
	}
	return words, nil
}

// describeDecodeError turns a decode failure into an operator message.
func describeDecodeError(err error, words []string) string {
	var unknown *mnemonic.UnknownWordError
	switch {
	case errors.Is(err, mnemonic.ErrWordCount):
		return fmt.Sprintf("expected %d words, got %d", mnemonic.PhraseWords, len(words))
	case errors.As(err, &unknown):
		return fmt.Sprintf("word %q is not in the English word list (check spelling; 4-letter prefixes are accepted)", unknown.Word)
	case errors.Is(err, mnemonic.ErrChecksum):
		if wallet.IsStandardMnemonic(words) {
			return "checksum is not zero: this is a standard BIP-39 phrase from another wallet, not a mobile wallet phrase"
		}
		return "checksum is not zero: check the words and their order"
	default:
		return err.Error()
	}
}

// parseUint32Flag range-checks a uint flag value.
func parseUint32Flag(name string, v uint) (uint32, error) {
	if uint64(v) > 0x7fffffff {
		return 0, fmt.Errorf("--%s %d out of range", name, v)
	}
	return uint32(v), nil
}

// readLine reads one trimmed line from r.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ── Output ──────────────────────────────────────────────────────────────

// output prints command results as a table or as JSON.
type output struct {
	format string
	w      io.Writer
}

func newOutput(format string, w io.Writer) *output {
	return &output{format: format, w: w}
}

// record prints v as JSON, or rows as a two-column table.
func (o *output) record(v any, rows [][]string) error {
	if o.format == config.FormatJSON {
		return o.json(v)
	}
	s, err := pterm.DefaultTable.WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(o.w, s)
	return err
}

// table prints v as JSON, or rows under header.
func (o *output) table(v any, header []string, rows [][]string) error {
	if o.format == config.FormatJSON {
		return o.json(v)
	}
	data := append(pterm.TableData{header}, rows...)
	s, err := pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(o.w, s)
	return err
}

func (o *output) json(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ── Views ───────────────────────────────────────────────────────────────

func walletRows(info *wallet.WalletInfo) [][]string {
	rows := [][]string{
		{"Name", info.Name},
		{"Network", string(info.Network)},
		{"Key type", string(info.KeyType)},
	}
	if info.KeyType.Hierarchical() {
		rows = append(rows, []string{"Path", derivationPath(info.Account, info.Index)})
	}
	return append(rows,
		[]string{"Address", info.Address.String()},
		[]string{"Fingerprint", info.Fingerprint.String()},
		[]string{"Created", info.CreatedAt.Format(time.RFC3339)},
	)
}

func walletListRows(list []wallet.WalletInfo) (header []string, rows [][]string) {
	header = []string{"Name", "Network", "Key type", "Address", "Fingerprint", "Created"}
	for _, w := range list {
		rows = append(rows, []string{
			w.Name,
			string(w.Network),
			string(w.KeyType),
			w.Address.String(),
			w.Fingerprint.String(),
			w.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return header, rows
}

func derivationPath(account, index uint32) string {
	return "m/44'/8888'/" + strconv.FormatUint(uint64(account), 10) + "'/0/" + strconv.FormatUint(uint64(index), 10)
}

// inspectView is the result of decoding a phrase without storing it.
type inspectView struct {
	Network     string `json:"network"`
	KeyType     string `json:"key_type"`
	Path        string `json:"path,omitempty"`
	Address     string `json:"address"`
	PublicKey   string `json:"public_key"`
	Fingerprint string `json:"fingerprint"`
	Entropy     string `json:"entropy,omitempty"`
}

func (v inspectView) rows() [][]string {
	rows := [][]string{
		{"Network", v.Network},
		{"Key type", v.KeyType},
	}
	if v.Path != "" {
		rows = append(rows, []string{"Path", v.Path})
	}
	rows = append(rows,
		[]string{"Address", v.Address},
		[]string{"Public key", v.PublicKey},
		[]string{"Fingerprint", v.Fingerprint},
	)
	if v.Entropy != "" {
		rows = append(rows, []string{"Entropy (base58)", v.Entropy})
	}
	return rows
}

// signView is the result of signing a message.
type signView struct {
	Wallet    string `json:"wallet"`
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

func newSignView(name string, info *wallet.WalletInfo, pub, sig []byte) signView {
	return signView{
		Wallet:    name,
		Address:   info.Address.String(),
		PublicKey: hex.EncodeToString(pub),
		Signature: hex.EncodeToString(sig),
	}
}

func (v signView) rows() [][]string {
	return [][]string{
		{"Wallet", v.Wallet},
		{"Address", v.Address},
		{"Public key", v.PublicKey},
		{"Signature", v.Signature},
	}
}

func balanceRows(b *rpcclient.BalanceResult) [][]string {
	return [][]string{
		{"Address", b.Address},
		{"Balance", types.FormatAmount(b.Balance)},
		{"Spendable", types.FormatAmount(b.Spendable)},
		{"Immature", types.FormatAmount(b.Immature)},
		{"Staked", types.FormatAmount(b.Staked)},
		{"Locked", types.FormatAmount(b.Locked)},
	}
}
