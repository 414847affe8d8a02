package models

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// CanApprove reports whether the role may approve registration requests.
func (r Role) CanApprove() bool {
	return r == RoleAdmin || r == RoleOwner
}

// User is one row of the users worksheet: [userId, alias, cabang, role].
type User struct {
	ID     string
	Alias  string
	Cabang string
	Role   Role
}

// CheckinRecord is one row of the Sales_Data worksheet. The checkout fields
// stay empty until the record is closed; an empty CheckoutAt marks it open.
type CheckinRecord struct {
	UserID     string
	Alias      string
	Cabang     string
	NamaToko   string
	Daerah     string
	MapsLink   string
	CheckinAt  string
	CheckoutAt string
	Order      string
	Tagihan    string
	Kendala    string
}

// Open reports whether the record still waits for a checkout.
func (r CheckinRecord) Open() bool {
	return r.CheckoutAt == ""
}

// CheckoutReport holds the parsed checkout form.
type CheckoutReport struct {
	Bertemu string
	Order   string
	Tagihan string
	Kendala string
}

type SessionState string

const (
	StateIdle                 SessionState = "idle"
	StateAwaitingStoreInfo    SessionState = "awaiting_store_info"
	StateAwaitingLocation     SessionState = "awaiting_location"
	StateAwaitingCheckoutForm SessionState = "awaiting_checkout_form"
)

// Session is the in-memory conversation state for one user. It is never
// persisted; a process restart simply puts everyone back to idle.
type Session struct {
	UserID          int64
	State           SessionState
	PendingNamaToko string
	PendingDaerah   string
}
