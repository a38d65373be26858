package spending

// DemoToken is the sentinel access token for degraded demo mode. A client
// holding it never calls the provider.
const DemoToken = "demo-token"

// DemoSnapshot returns the fixed demo-mode totals. The literals are part
// of the product contract and must not change.
func DemoSnapshot() Snapshot {
	return Snapshot{
		Daily:   45.67,
		Weekly:  234.89,
		Monthly: 1247.23,
	}
}
