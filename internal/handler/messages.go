package handler

// Notices shown to the user after a form submission or admin action.
const (
	MsgNotApproved        = "Your account is not approved by admin yet."
	MsgInvalidLogin       = "Invalid username or password"
	MsgInvalidAdminLogin  = "Invalid admin credentials"
	MsgRegistered         = "Registration successful! Wait for admin approval."
	MsgRegisterInvalid    = "Please fill in all fields with a valid email address."
	MsgDuplicateAccount   = "Username or email already exists."
	MsgFeedbackSubmitted  = "Feedback submitted successfully!"
	MsgFeedbackInvalid    = "Please choose a feedback type and a rating from 1 to 5."
	MsgProfileUpdated     = "Profile updated successfully!"
	MsgProfileInvalid     = "Full name is required."
	MsgPasswordFields     = "Please fill in all password fields."
	MsgCurrentPassword    = "Current password incorrect!"
	MsgPasswordMismatch   = "Passwords do not match!"
	MsgPasswordUpdated    = "Password updated!"
	MsgUserApproved       = "User approved."
	MsgUserRestricted     = "User restricted."
	MsgUserNotFound       = "User not found."
	MsgAdminImmutable     = "The administrator account cannot be changed."
	MsgInvalidTransition  = "That status change is not allowed."
	MsgSomethingWentWrong = "Something went wrong. Please try again later."
)
