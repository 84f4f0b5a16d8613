package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxFolderNameLength = 255

	// MaxPromptTitleLength is the maximum length for prompt titles.
	MaxPromptTitleLength = 255

	// MaxPromptContentLength bounds prompt bodies (100k characters).
	MaxPromptContentLength = 100_000

	// MaxDescriptionLength applies to folder and prompt descriptions.
	MaxDescriptionLength = 2000

	// MaxUsernameLength is the maximum length for profile usernames.
	MaxUsernameLength = 50

	// MaxBioLength is the maximum length for profile bios.
	MaxBioLength = 500

	// PromptPreviewLength is the number of runes of content returned in listings.
	PromptPreviewLength = 300

	// DefaultPageSize and MaxPageSize bound explore pagination.
	DefaultPageSize = 12
	MaxPageSize     = 100

	// ExtensionPromptLimit caps each extension tab (newest first).
	ExtensionPromptLimit = 50
)
