package printer

// Deliverer routes a rendered receipt to its destination, keyed by the
// sale identifier so spooled files can be traced back to their sale.
type Deliverer interface {
	Deliver(saleID string, data []byte) error
}

// RemoteDeliverer sends receipts to a network printer when an address is
// configured, and falls back to a spool directory otherwise. The
// unattended poller uses it where no local USB printer exists.
type RemoteDeliverer struct {
	// Address is the raw-9100 endpoint; empty or "0.0.0.0" disables it.
	Address  string
	SpoolDir string
}

// NewRemoteDeliverer creates a deliverer for the given endpoint and
// spool fallback directory.
func NewRemoteDeliverer(address, spoolDir string) *RemoteDeliverer {
	return &RemoteDeliverer{Address: address, SpoolDir: spoolDir}
}

func (d *RemoteDeliverer) networkEnabled() bool {
	return d.Address != "" && d.Address != "0.0.0.0"
}

// Deliver writes the buffer to the network printer or, without one, to a
// cupom_<saleID>.bin file under the spool directory.
func (d *RemoteDeliverer) Deliver(saleID string, data []byte) error {
	if d.networkEnabled() {
		return NewNetworkPrinter(d.Address).Print(data)
	}
	return NewSpoolPrinter(d.SpoolDir, saleID).Print(data)
}
