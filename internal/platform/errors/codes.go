// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Lookup errors
	CodeNotFound           Code = "NOT_FOUND"
	CodePlayerNotFound     Code = "PLAYER_NOT_FOUND"
	CodePropertyNotFound   Code = "PROPERTY_NOT_FOUND"
	CodeTradeNotFound      Code = "TRADE_NOT_FOUND"
	CodeBribeNotFound      Code = "BRIBE_NOT_FOUND"
	CodeConfessionNotFound Code = "CONFESSION_NOT_FOUND"

	// Game lifecycle errors
	CodeGameNotStarted     Code = "GAME_NOT_STARTED"
	CodeGameAlreadyStarted Code = "GAME_ALREADY_STARTED"
	CodeGameOver           Code = "GAME_OVER"
	CodeInvalidSetup       Code = "GAME_INVALID_SETUP"

	// Turn errors
	CodeWrongTurnPhase      Code = "TURN_WRONG_PHASE"
	CodeNotYourTurn         Code = "TURN_NOT_YOURS"
	CodePendingActionActive Code = "PENDING_ACTION_ACTIVE"
	CodePendingMismatch     Code = "PENDING_ACTION_MISMATCH"
	CodePlayerInGulag       Code = "PLAYER_IN_GULAG"
	CodePlayerNotInGulag    Code = "PLAYER_NOT_IN_GULAG"
	CodePlayerEliminated    Code = "PLAYER_ELIMINATED"
	CodeControllerExcluded  Code = "CONTROLLER_NOT_ALLOWED"

	// Ledger errors
	CodeInsufficientFunds     Code = "INSUFFICIENT_FUNDS"
	CodeInvalidAmount         Code = "INVALID_AMOUNT"
	CodeNotCustodian          Code = "NOT_CUSTODIAN"
	CodeIncompleteGroup       Code = "MUST_CONTROL_GROUP"
	CodePropertyMortgaged     Code = "PROPERTY_MORTGAGED"
	CodePropertyNotMortgaged  Code = "PROPERTY_NOT_MORTGAGED"
	CodePropertyCollectivized Code = "PROPERTY_COLLECTIVIZED"
	CodeNotCollectivizable    Code = "PROPERTY_NOT_COLLECTIVIZABLE"
	CodeCollectivizationCap   Code = "COLLECTIVIZATION_AT_CAP"
	CodeNoCollectivization    Code = "COLLECTIVIZATION_NONE"
	CodeNoDebt                Code = "DEBT_NONE"
	CodeInvalidTrade          Code = "TRADE_INVALID"
	CodeNoEscapeToken         Code = "ESCAPE_TOKEN_NONE"
	CodeNoFavour              Code = "FAVOUR_NONE"
	CodeBribeResolved         Code = "BRIBE_ALREADY_RESOLVED"
	CodeSponsorIneligible     Code = "VOUCHER_SPONSOR_INELIGIBLE"

	// Ability errors
	CodeWrongPiece         Code = "ABILITY_WRONG_PIECE"
	CodeAbilityUsed        Code = "ABILITY_ALREADY_USED"
	CodeNotUnderSuspicion  Code = "ABILITY_TARGET_NOT_SUSPECT"
	CodeInvalidAbilityUser Code = "ABILITY_INVALID_TARGET"

	// Tribunal errors
	CodeDenounceSelf          Code = "DENOUNCE_SELF"
	CodeDenounceController    Code = "DENOUNCE_CONTROLLER"
	CodeDenounceImprisoned    Code = "DENOUNCE_IMPRISONED"
	CodeTribunalActive        Code = "TRIBUNAL_ACTIVE"
	CodeDenounceQuota         Code = "DENOUNCE_QUOTA_EXCEEDED"
	CodeDenounceRank          Code = "DENOUNCE_RANK_TOO_LOW"
	CodeNoTribunal            Code = "TRIBUNAL_NONE"
	CodeTribunalPhase         Code = "TRIBUNAL_WRONG_PHASE"
	CodeWitnessIneligible     Code = "WITNESS_INELIGIBLE"
	CodeWitnessBothSides      Code = "WITNESS_BOTH_SIDES"
	CodeInsufficientWitnesses Code = "TRIBUNAL_INSUFFICIENT_WITNESSES"
	CodeInvalidVerdict        Code = "TRIBUNAL_INVALID_VERDICT"

	// Collective errors
	CodePlanUsed       Code = "PLAN_ALREADY_USED"
	CodeNoPlan         Code = "PLAN_NONE"
	CodePurgeUsed      Code = "PURGE_ALREADY_USED"
	CodeNoPurge        Code = "PURGE_NONE"
	CodeEndVoteActive  Code = "END_VOTE_ACTIVE"
	CodeNoEndVote      Code = "END_VOTE_NONE"
	CodeVoterIneligible Code = "VOTER_INELIGIBLE"
)

// PlayerFacing reports whether a rejection with this code should be narrated
// in the game log. Unknown references are silent no-ops.
func (c Code) PlayerFacing() bool {
	switch c {
	case CodeUnknown,
		CodeNotFound,
		CodePlayerNotFound,
		CodePropertyNotFound,
		CodeTradeNotFound,
		CodeBribeNotFound,
		CodeConfessionNotFound:
		return false
	default:
		return true
	}
}
