package entity

// Operation names a gated use case in the access policy table.
type Operation string

const (
	OpGetHelloWorld     Operation = "get_hello_world"
	OpExecuteHelloWorld Operation = "execute_hello_world"
	OpGetUserDetails    Operation = "get_user_details"
	OpUpdateProfile     Operation = "update_profile"
	OpDeleteAccount     Operation = "delete_account"
)

// Resolution tells the auth guard how to establish the caller's identity.
type Resolution int

const (
	// ResolveByID looks the user up by the presented id alone.
	ResolveByID Resolution = iota + 1
	// ResolveByIDAndToken requires a valid token whose subject equals the presented id.
	ResolveByIDAndToken
	// ResolveByToken derives the identity from a valid token.
	ResolveByToken
)

// AccessRule is one row of the policy table.
type AccessRule struct {
	Resolution Resolution
	// Roles that may perform the operation. Empty means any authenticated identity.
	Roles Roles
	// AllowOwner lets the owner of the target account through even without one of Roles.
	AllowOwner bool
}

// Permits reports whether user may perform the operation on the account targetUserID.
// A zero targetUserID means the operation has no target beyond the caller.
func (r AccessRule) Permits(user *User, targetUserID int64) bool {
	if user == nil {
		return false
	}
	if len(r.Roles) == 0 || r.Roles.Contains(user.Role) {
		return true
	}

	return r.AllowOwner && targetUserID != 0 && user.IsOwner(targetUserID)
}

// AccessPolicy is the single source of truth for who may do what.
// register and login are public and therefore absent.
//
//nolint:gochecknoglobals
var AccessPolicy = map[Operation]AccessRule{
	OpGetHelloWorld: {
		Resolution: ResolveByID,
		Roles:      Roles{RoleUser},
	},
	OpExecuteHelloWorld: {
		Resolution: ResolveByIDAndToken,
		Roles:      Roles{RoleUser, RoleAdministrator},
	},
	OpGetUserDetails: {
		Resolution: ResolveByToken,
	},
	OpUpdateProfile: {
		Resolution: ResolveByToken,
	},
	OpDeleteAccount: {
		Resolution: ResolveByToken,
		Roles:      Roles{RoleAdministrator},
		AllowOwner: true,
	},
}

// RuleFor returns the access rule of op, reporting whether op is gated at all.
func RuleFor(op Operation) (AccessRule, bool) {
	rule, ok := AccessPolicy[op]

	return rule, ok
}
