package common

// User-facing result messages returned by the chatbot facade.
const (
	MessageSignupCreated   = "User %s created successfully!"
	MessageSignupExists    = "User already exists!"
	MessageLoginWelcome    = "Welcome back, %s!"
	MessageLoginInvalid    = "Invalid email or password!"
	MessageLogout          = "User %s has been logged out."
	MessageNotLoggedIn     = "You must be logged in to use the chatbot."
	MessageNoAnswer        = "No answer found."
	MessageExtractionError = "Could not read the uploaded document."
)
