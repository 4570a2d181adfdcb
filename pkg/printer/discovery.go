package printer

import (
	"io"
	"log"
)

// USBID identifies a thermal printer model on the USB bus.
type USBID struct {
	Vendor  uint16
	Product uint16
	Model   string
}

// KnownPrinters is the ordered table of vendor/product id pairs probed
// during discovery. Extend the table, not the discovery logic, to support
// new hardware.
var KnownPrinters = []USBID{
	{0x04b8, 0x0202, "Epson TM-T20"},
	{0x04b8, 0x0e15, "Epson TM-T20II"},
	{0x1504, 0x0006, "Generic POS-58"},
	{0x0dd4, 0x015d, "Bematech"},
}

// Discovery finds a usable printer handle. It exists as an interface so
// services can substitute a fake during tests.
type Discovery interface {
	// Discover returns an open printer handle, or nil when no hardware is
	// present. A nil result is a legitimate outcome, not an error.
	Discover(simulate bool) Printer
}

// USBDiscovery probes the known hardware table over USB.
type USBDiscovery struct {
	// ConsoleSink receives the simulated printer output. Defaults to stdout.
	ConsoleSink io.Writer
	// open is swappable for tests.
	open func(vendorID, productID uint16) (Printer, error)
}

// NewUSBDiscovery creates the default hardware discovery.
func NewUSBDiscovery() *USBDiscovery {
	return &USBDiscovery{open: OpenUSBPrinter}
}

// Discover returns a loopback console printer when simulate is set.
// Otherwise it walks KnownPrinters in order and returns the first device
// that opens. When every candidate fails (absent or busy) it returns nil.
func (d *USBDiscovery) Discover(simulate bool) Printer {
	if simulate {
		log.Printf("printer: simulation mode, using console loopback printer")
		return NewConsolePrinter(d.ConsoleSink)
	}

	open := d.open
	if open == nil {
		open = OpenUSBPrinter
	}

	for _, id := range KnownPrinters {
		p, err := open(id.Vendor, id.Product)
		if err != nil {
			log.Printf("printer: %s (%04x:%04x) not available: %v", id.Model, id.Vendor, id.Product, err)
			continue
		}
		log.Printf("printer: detected %s (%04x:%04x)", id.Model, id.Vendor, id.Product)
		return p
	}

	log.Printf("printer: no known printer detected")
	return nil
}
