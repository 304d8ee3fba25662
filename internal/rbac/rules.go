package rbac

const (
	PermRender = "quiz:render"
	PermExport = "quiz:export"
	PermRead   = "export:read"
)

// Default policy.
var RolePermissions = map[string][]string{
	"viewer": {
		PermRender,
		PermRead,
	},
	// publisher is for automation that pushes exports and fetches the
	// documents it created, without browsing the export history.
	"publisher": {
		PermExport,
	},
	"author": {
		"quiz:*",
		PermRead,
	},
	"admin": {
		"*", // everything
	},
}
