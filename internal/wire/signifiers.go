package wire

// Client→server signifiers. The numbering is fixed by the server protocol
// and is independent of the server→client namespace.
const (
	CreateAccount         = 1
	Login                 = 2
	DeleteAccount         = 3
	CreateOrJoinGameRoom  = 4
	LeaveGameRoom         = 5
	SendMessageToOpponent = 6
	PlayerMove            = 11
	RequestAccountList    = 13
)

// Server→client signifiers.
const (
	AccountCreated          = 1
	AccountCreationFailed   = 2
	LoginSuccessful         = 3
	LoginFailed             = 4
	AccountList             = 5
	AccountDeleted          = 6
	AccountDeletionFailed   = 7
	GameRoomCreatedOrJoined = 8
	StartGame               = 9
	OpponentMessage         = 10
	OpponentMove            = 11
	GameResult              = 12
	TurnUpdate              = 13
	ObserverJoined          = 14
	BoardStateUpdate        = 15
	GameRoomDestroyed       = 16
)
