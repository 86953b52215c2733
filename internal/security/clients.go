package security

// In-memory client registry. Identity policy lives outside the core; this
// registry only exists so the token endpoint can mint caller identities
// for dev and test environments.
type Client struct {
	ID      string
	Secret  string
	UserID  string
	Role    string // admin | customer
	Enabled bool
}

var Clients = map[string]Client{
	"storefront-web": {ID: "storefront-web", Secret: "storefront-secret", UserID: "", Role: "customer", Enabled: true},
	"admin-console":  {ID: "admin-console", Secret: "admin-console-secret", UserID: "", Role: "admin", Enabled: true},
	"svc-settlement": {ID: "svc-settlement", Secret: "settlement-secret", UserID: "", Role: "service", Enabled: true},
}
