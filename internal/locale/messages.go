package locale

// Validation messages.
const (
	MsgUsernameRequired        = "UsernameRequired"
	MsgUsernameTooShort        = "UsernameTooShort"
	MsgUsernameTooLong         = "UsernameTooLong"
	MsgEmailRequired           = "EmailRequired"
	MsgEmailInvalid            = "EmailInvalid"
	MsgPasswordRequired        = "PasswordRequired"
	MsgPasswordTooShort        = "PasswordTooShort"
	MsgConfirmPasswordRequired = "ConfirmPasswordRequired"
	MsgPasswordsDoNotMatch     = "PasswordsDoNotMatch"
	MsgTitleRequired           = "TitleRequired"
	MsgTitleTooLong            = "TitleTooLong"
	MsgDescriptionTooLong      = "DescriptionTooLong"
	MsgDueDateInvalid          = "DueDateInvalid"
	MsgPriorityInvalid         = "PriorityInvalid"
	MsgProgressOutOfRange      = "ProgressOutOfRange"
	MsgFieldInvalid            = "FieldInvalid"
)

// Interface labels.
const (
	MsgLoginTitle       = "LoginTitle"
	MsgRegisterTitle    = "RegisterTitle"
	MsgDashboardTitle   = "DashboardTitle"
	MsgNewTaskTitle     = "NewTaskTitle"
	MsgEditTaskTitle    = "EditTaskTitle"
	MsgUsernameLabel    = "UsernameLabel"
	MsgEmailLabel       = "EmailLabel"
	MsgPasswordLabel    = "PasswordLabel"
	MsgConfirmLabel     = "ConfirmPasswordLabel"
	MsgTitleLabel       = "TitleLabel"
	MsgDescriptionLabel = "DescriptionLabel"
	MsgPriorityLabel    = "PriorityLabel"
	MsgDueDateLabel     = "DueDateLabel"
	MsgCategoryLabel    = "CategoryLabel"
	MsgProgressLabel    = "ProgressLabel"
	MsgFilterLabel      = "FilterLabel"
	MsgLoading          = "Loading"
	MsgNoTasks          = "NoTasks"
	MsgNoMatches        = "NoMatches"
	MsgWelcome          = "Welcome"
	MsgLoginHelp        = "LoginHelp"
	MsgRegisterHelp     = "RegisterHelp"
	MsgDashboardHelp    = "DashboardHelp"
	MsgFormHelp         = "FormHelp"
	MsgConfirmDelete    = "ConfirmDelete"
)

// MsgStats takes Total, Completed, Pending, HighPriority and Rate.
const MsgStats = "Stats"
