package printer

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"
)

// Printer is the interface for sending raw ESC/POS data to a thermal printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected returns true if the printer connection is active.
	IsConnected() bool
}

// --- Network Printer (dials TCP, e.g. 192.168.1.200:9100) ---

type networkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
// Address should include port, e.g. "192.168.1.200:9100". Each print is a
// single bounded attempt: connect, write the full buffer, close. No retry.
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.timeout))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil // Network printer opens/closes per print job
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Spool Printer (writes a file for an out-of-band process to pick up) ---

type spoolPrinter struct {
	dir  string
	name string
}

// NewSpoolPrinter creates a printer that writes the buffer to
// dir/cupom_<name>.bin. The write completing is delivery success; a
// separate process drains the spool directory.
func NewSpoolPrinter(dir, name string) Printer {
	return &spoolPrinter{dir: dir, name: name}
}

// SpoolFileName returns the spool file name used for a given sale identifier.
func SpoolFileName(saleID string) string {
	return fmt.Sprintf("cupom_%s.bin", saleID)
}

func (p *spoolPrinter) Print(data []byte) error {
	if p.dir != "" {
		if err := os.MkdirAll(p.dir, 0o755); err != nil {
			return fmt.Errorf("printer: failed to create spool dir %s: %w", p.dir, err)
		}
	}
	path := filepath.Join(p.dir, SpoolFileName(p.name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("printer: failed to write spool file %s: %w", path, err)
	}
	return nil
}

func (p *spoolPrinter) Close() error {
	return nil
}

func (p *spoolPrinter) IsConnected() bool {
	return true
}

// --- Console Printer (simulation loopback, used for tests without hardware) ---

type consolePrinter struct {
	out io.Writer
}

// NewConsolePrinter creates a loopback printer that echoes all writes to a
// console sink. It never fails.
func NewConsolePrinter(out io.Writer) Printer {
	if out == nil {
		out = os.Stdout
	}
	return &consolePrinter{out: out}
}

func (p *consolePrinter) Print(data []byte) error {
	fmt.Fprintf(p.out, "[SIMULACAO IMPRESSORA] %d bytes\n", len(data))
	_, _ = p.out.Write(data)
	fmt.Fprintln(p.out)
	return nil
}

func (p *consolePrinter) Close() error {
	return nil
}

func (p *consolePrinter) IsConnected() bool {
	return true
}
