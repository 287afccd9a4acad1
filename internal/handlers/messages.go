package handlers

// Envelope messages, kept stable for existing API clients.
const (
	msgHealthCheck = "Health check!"

	msgValidationError = "Validation error"
	msgIDRequired      = "Id is required"

	msgInvalidCredentials   = "Invalid credentials"
	msgIncorrectCredentials = "Incorrect username or password"
	msgTokenNotProvided     = "Token not provided"
	msgInvalidToken         = "Invalid Token"
	msgAuthenticationFailed = "Authentication failed"
	msgInternalServerError  = "Internal server error"

	msgUserCreated       = "User created successfully"
	msgUserExists        = "User name already exists"
	msgUserFound         = "User found"
	msgNoUserFound       = "No user found"
	msgUserUpdated       = "User updated successfully"
	msgUserDeleted       = "User successfully deleted"
	msgErrorGettingUsers = "Error in getting users"
	msgErrorCreatingUser = "Error in creating user"
	msgErrorUpdatingUser = "Error in updating user"
	msgErrorDeletingUser = "Error in deleting user"

	msgAdminCreated       = "Admin created successfully"
	msgAdminExists        = "Admin name already exists"
	msgAdminFound         = "Admin found"
	msgNoAdminFound       = "No admin found"
	msgAdminUpdated       = "Admin updated successfully"
	msgAdminDeleted       = "Admin successfully deleted"
	msgErrorGettingAdmins = "Error in getting admins"
	msgErrorCreatingAdmin = "Error in creating admin"
	msgErrorUpdatingAdmin = "Error in updating admin"
	msgErrorDeletingAdmin = "Error in deleting admin"

	msgBookCreated       = "Book created successfully"
	msgBookExists        = "Book name already exists"
	msgBookFound         = "Book found"
	msgNoBookFound       = "No book found"
	msgBookUpdated       = "Book updated successfully"
	msgBookDeleted       = "Book successfully deleted"
	msgErrorGettingBooks = "Error in getting books"
	msgErrorCreatingBook = "Error in creating book"
	msgErrorUpdatingBook = "Error in updating book"
	msgErrorDeletingBook = "Error in deleting book"

	msgTransactionCreated       = "Transaction created successfully"
	msgTransactionExists        = "Transaction already exists"
	msgTransactionFound         = "Transaction found"
	msgNoTransactionFound       = "No transaction found"
	msgTransactionUpdated       = "Transaction updated successfully"
	msgTransactionDeleted       = "Transaction successfully deleted"
	msgErrorGettingTransactions = "Error in getting transactions"
	msgErrorCreatingTransaction = "Error in creating transaction"
	msgErrorUpdatingTransaction = "Error in updating transaction"
	msgErrorDeletingTransaction = "Error in deleting transaction"
)
