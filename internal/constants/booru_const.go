// Package constants provides shared constant values used throughout the application.
//
// The booru_const.go file defines the wire-level vocabulary of the upstream
// image-board API: query parameter names, well-known parameter values, and the
// response keys under which resources are returned. Centralizing these values
// keeps request construction and response normalization consistent across the
// repository layer.
package constants

// Query parameter names used by the upstream DAPI-style endpoints.
const (
	// ParamPage selects the API surface ("dapi" for the JSON API).
	ParamPage = "page"

	// ParamResource selects the resource type (post, tag, comment).
	ParamResource = "s"

	// ParamQueryType selects the operation, always "index" for searches.
	ParamQueryType = "q"

	// ParamJSON requests a JSON response instead of XML.
	ParamJSON = "json"

	// ParamLimit caps the number of results per request.
	ParamLimit = "limit"

	// ParamPID is the zero-based result page index.
	ParamPID = "pid"

	// ParamTags carries the space-separated tag query.
	ParamTags = "tags"

	// ParamChangeID filters posts by change ID.
	ParamChangeID = "cid"

	// ParamID filters by a single resource ID.
	ParamID = "id"

	// ParamPostID scopes comment listings to one post.
	ParamPostID = "post_id"

	// ParamOrder sets the tag sort direction (ASC or DESC).
	ParamOrder = "order"

	// ParamOrderBy sets the tag sort field (date, count or name).
	ParamOrderBy = "orderby"

	// ParamAfterID pages tag listings by ID.
	ParamAfterID = "after_id"

	// ParamName matches a tag by exact name.
	ParamName = "name"

	// ParamNames matches multiple tags by name.
	ParamNames = "names"

	// ParamDeleted switches a post listing to deleted posts.
	ParamDeleted = "deleted"

	// ParamLastID returns deleted posts above the given ID.
	ParamLastID = "last_id"

	// ParamAPIKey carries the upstream API key credential.
	ParamAPIKey = "api_key"

	// ParamUserID carries the upstream user ID credential.
	ParamUserID = "user_id"
)

// Well-known parameter values for the primary and fallback request formats.
const (
	// PageDAPI is the primary API surface.
	PageDAPI = "dapi"

	// QueryIndex is the only query type used by searches.
	QueryIndex = "index"

	// ResourcePost selects the post resource.
	ResourcePost = "post"

	// ResourceTag selects the tag resource.
	ResourceTag = "tag"

	// ResourceComment selects the comment resource.
	ResourceComment = "comment"

	// FallbackPage is the alternate API surface some booru
	// implementations expose for post listings.
	FallbackPage = "post"

	// FallbackResource is the alternate resource selector paired with
	// FallbackPage.
	FallbackResource = "list"

	// DeletedShow is the ParamDeleted value that lists deleted posts.
	DeletedShow = "show"

	// JSONEnabled is the ParamJSON value requesting JSON output.
	JSONEnabled = "1"
)

// Response keys under which the upstream returns resource lists. Some
// deployments pluralize the key, so both spellings are recognized.
const (
	KeyPost     = "post"
	KeyPosts    = "posts"
	KeyTag      = "tag"
	KeyTags     = "tags"
	KeyComment  = "comment"
	KeyComments = "comments"
)

// IndexEndpoint is the single endpoint path all upstream requests target.
const IndexEndpoint = "/index.php"

// Limits and defaults for upstream searches.
const (
	// MinPostLimit is the smallest accepted post search limit.
	MinPostLimit = 1

	// MaxPostLimit is the largest limit the upstream honors per request.
	MaxPostLimit = 100

	// DefaultPostLimit is the post search limit used when none is given.
	DefaultPostLimit = 20

	// DefaultTagLimit is the tag search limit used when none is given.
	DefaultTagLimit = 100

	// DefaultTagOrder is the default tag sort direction.
	DefaultTagOrder = "ASC"

	// DefaultTagOrderBy is the default tag sort field.
	DefaultTagOrderBy = "name"

	// MinPatternLength is the minimum query length before a zero-result
	// exact tag search falls back to a wildcard pattern search.
	MinPatternLength = 3

	// RandomSortTag is prepended to the query for random searches.
	RandomSortTag = "sort:random"
)
