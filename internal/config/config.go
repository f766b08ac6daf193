package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for vCard imports.
var UserAgent = "Go-AddressBook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go AddressBook"
	AppID          = "com.github.tartampluch.go-addressbook"
	KeyringService = "com.github.tartampluch.go-addressbook"
	LogFileName    = "app.log"
	BookFileName   = "users_book.vcf"
	CorruptSuffix  = ".corrupt"
	TempFilePrefix = ".users_book-*.tmp"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the address book snapshot and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagFile         = "file"
	FlagLang         = "lang"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescFile     = "Path of the address book file (default: user config dir)"
	FlagDescLang     = "Language of the shell messages (en, fr)"
	MsgVersionOutput = "%s version %s (commit %s, built %s) %s/%s\n"
)

// SupportedLanguages defines the list of available shell languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Shell Commands
// -----------------------------------------------------------------------------

const (
	Prompt = ">>> "

	CmdAdd            = "add"
	CmdAddPhone       = "add_phone"
	CmdChangePhone    = "change_phone"
	CmdChangeBirthday = "change_birthday"
	CmdRemovePhone    = "remove_phone"
	CmdPhone          = "phone"
	CmdWhen           = "when"
	CmdIter           = "iter"
	CmdSearch         = "search"
	CmdUpcoming       = "upcoming"
	CmdExport         = "export"
	CmdImport         = "import"
	CmdLogin          = "login"
	CmdHelp           = "help"
)

// ExitCommands end the shell session.
var ExitCommands = []string{"exit", "close", "good bye", "off", "stop", "quit"}

// ShowAllCommands print every record of the book.
var ShowAllCommands = []string{"show", "show_all", "show all"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyGoodbye         = "goodbye"
	TKeyUnknownCommand  = "unknown_command"
	TKeyUsage           = "usage"
	TKeyEmptyBook       = "empty_book"
	TKeyHelp            = "help"
	TKeyHelpLanguages   = "help_languages"
	TKeyPromptPhone     = "prompt_phone"
	TKeyPromptBirthday  = "prompt_birthday"
	TKeyPromptNewPhone  = "prompt_new_phone"
	TKeyPromptNewBday   = "prompt_new_birthday"
	TKeyPromptSelect    = "prompt_select_phone"
	TKeyPromptNextPage  = "prompt_next_page"
	TKeyPromptPassword  = "prompt_password"
	TKeyPhoneAdded      = "phone_added"
	TKeyPhoneRemoved    = "phone_removed"
	TKeyPhoneChanged    = "phone_changed"
	TKeyBirthdaySet     = "birthday_set"
	TKeyRecordAdded     = "record_added"
	TKeyDaysLeft        = "days_left"
	TKeyBirthdayToday   = "birthday_today"
	TKeyNoMoreRecords   = "no_more_records"
	TKeyNothingFound    = "nothing_found"
	TKeyNoUpcoming      = "no_upcoming"
	TKeyUpcomingLine    = "upcoming_line"
	TKeyExported        = "exported"
	TKeyImported        = "imported"
	TKeyLoginSaved      = "login_saved"
	TKeyCancelled       = "cancelled"
	TKeySaveFailed      = "save_failed"
	TKeyErrPhoneFormat  = "err_phone_format"
	TKeyErrDateFormat   = "err_date_format"
	TKeyErrDuplicate    = "err_duplicate"
	TKeyErrNotFound     = "err_not_found"
	TKeyErrOutOfRange   = "err_out_of_range"
	TKeyErrNotANumber   = "err_not_a_number"
	TKeyErrEmptyPhones  = "err_empty_phones"
	TKeyErrNoBirthday   = "err_no_birthday"
	TKeyErrInvalidName  = "err_invalid_name"
	TKeyErrPageSize     = "err_page_size"
	TKeyErrUnexpected   = "err_unexpected"
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name (For age 0)
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage       = "en"
	DefaultUpcomingDays   = 30
	PhoneMinDigits        = 10
	PhoneMaxDigits        = 12
	PhoneStripChars       = "+()- "
	SchemaVersion         = "1"
	UIDSalt               = "go-addressbook-v1-" // Salt for deterministic event UID generation
	UpcomingDaysMax       = 366
	ExportYearsAroundNow  = 1
	HoursPerDay           = 24
	ReminderTriggerFormat = "-P%dD"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go AddressBook//Calendar//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goaddressbook"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// vCard Fields
	VCardVersion = "4.0"
	VCardSchema  = "X-ADDRESSBOOK-SCHEMA"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// DateFormatInput is the only accepted birthday input layout (dd.mm.yyyy).
	DateFormatInput = "02.01.2006"

	// DateFormatDisplay is used in record summaries and stored BDAY values.
	DateFormatDisplay = "2006-01-02"

	// Date layouts accepted when reading BDAY from imported vCards.
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// Summary formats
	FormatSummary         = "%s: phones=[%s]"
	FormatSummaryBirthday = "%s, birthday=%s"
	FormatPhonesOf        = "%s: [%s]"
	FormatNumberedPhone   = "%d. %s"
	PhoneSeparator        = ", "

	// File Extensions
	ExtICS = ".ics"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	MaxInputLineSize    = 1024 * 1024      // 1MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	HeaderUserAgent     = "User-Agent"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrPhoneLength      = "must contain between 10 and 12 digits"
	ErrPhoneDigits      = "must contain only digits"
	ErrDateLayout       = `must be a real date in format "dd.mm.yyyy"`
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrSourceEmpty      = "import source is empty"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrVCardEncode      = "failed to encode vCard data"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrBookLoad         = "failed to load address book"
	ErrBookSave         = "failed to save address book"
	ErrBookQuarantine   = "failed to move unreadable address book aside"
	ErrSchemaMismatch   = "unsupported address book schema"
	ErrCardNoName       = "card has no name"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app directory"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrReadInput        = "failed to read input"
	ErrKeyringSet       = "failed to save credentials to keyring"
	ErrExportCreate     = "failed to create export file"
	ErrDaysNotNumber    = "days must be a positive number"
	ErrUnexpectedStatus = "server returned unexpected status"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgBookLoaded      = "Address book loaded"
	MsgBookMissing     = "No address book file yet, starting empty"
	MsgBookSaved       = "Address book saved"
	MsgBookCorrupt     = "Address book unreadable, starting empty"
	MsgCommand         = "Command dispatched"
	MsgCommandFailed   = "Command failed"
	MsgExported        = "Calendar export successful"
	MsgImported        = "vCard import finished"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgSkippedPhone    = "Skipping invalid phone number"
	MsgSkippedDup      = "Skipping duplicate contact"
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgLocaleFallback  = "Unknown language, falling back to English"
	MsgTransMissing    = "Missing translation key"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgInputClosed     = "Input closed"
	MsgCtxCancel       = "Interrupted, stopping shell"
	MsgBookQuarantined = "Unreadable address book moved aside"
	MsgDownloading     = "Downloading vCards"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyCommand   = "command"
	LogKeyUser      = "user"
	LogKeyRecords   = "records"
	LogKeyTotal     = "total_cards"
	LogKeyAdded     = "added"
	LogKeySkipped   = "skipped"
	LogKeyEvents    = "events"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyName      = "name"
	LogKeySource    = "source"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompStorage  = "storage"
	CompFetcher  = "fetcher"
	CompCalendar = "calendar"
	CompShell    = "shell"
	CompMain     = "main"
	CompI18n     = "i18n"
)
