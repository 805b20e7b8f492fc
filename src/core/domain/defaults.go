package domain

// DefaultLanguage is the language tag assigned to jokes created without one.
const DefaultLanguage = "ru"

// MaxBodyLength is the maximum joke body length in characters.
const MaxBodyLength = 5000

// MaxTitleLength is the maximum joke title length in characters.
const MaxTitleLength = 200

// MaxCommentLength is the maximum comment body length in characters.
const MaxCommentLength = 1000

// MaxUsernameLength bounds usernames at registration.
const MaxUsernameLength = 50

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// DefaultPage is the page used when the client sends none or garbage.
const DefaultPage = 1

// DefaultPageSize is the page size used when the client sends none or garbage.
const DefaultPageSize = 10

// MaxPageSize caps the page size a client may request.
const MaxPageSize = 50
