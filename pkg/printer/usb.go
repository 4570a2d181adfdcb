package printer

import (
	"fmt"
	"time"

	"github.com/google/gousb"
)

// usbPrinter talks to a thermal printer over its native USB bulk OUT
// endpoint, addressed by (vendor id, product id).
type usbPrinter struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	intf *gousb.Interface
	done func()
	out  *gousb.OutEndpoint
}

// OpenUSBPrinter opens the printer with the given vendor/product id pair
// and claims the first bulk OUT endpoint of its default interface.
// Returns an error when the device is absent or busy.
func OpenUSBPrinter(vendorID, productID uint16) (Printer, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vendorID), gousb.ID(productID))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("printer: failed to open USB device %04x:%04x: %w", vendorID, productID, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("printer: USB device %04x:%04x not present", vendorID, productID)
	}

	dev.ControlTimeout = 5 * time.Second
	// The kernel usblp driver usually owns the printer; detach it while we hold the handle.
	_ = dev.SetAutoDetach(true)

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("printer: failed to claim interface on %04x:%04x: %w", vendorID, productID, err)
	}

	var out *gousb.OutEndpoint
	for _, ep := range intf.Setting.Endpoints {
		if ep.Direction == gousb.EndpointDirectionOut && ep.TransferType == gousb.TransferTypeBulk {
			out, err = intf.OutEndpoint(ep.Number)
			break
		}
	}
	if err != nil || out == nil {
		done()
		dev.Close()
		ctx.Close()
		if err == nil {
			err = fmt.Errorf("no bulk OUT endpoint")
		}
		return nil, fmt.Errorf("printer: unusable USB device %04x:%04x: %w", vendorID, productID, err)
	}

	return &usbPrinter{ctx: ctx, dev: dev, intf: intf, done: done, out: out}, nil
}

func (p *usbPrinter) Print(data []byte) error {
	if _, err := p.out.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to USB endpoint: %w", err)
	}
	return nil
}

func (p *usbPrinter) Close() error {
	p.done()
	if err := p.dev.Close(); err != nil {
		p.ctx.Close()
		return err
	}
	return p.ctx.Close()
}

func (p *usbPrinter) IsConnected() bool {
	return p.dev != nil
}
