package linkedapi

import "errors"

// OperationName identifies a catalog operation. It is the value persisted
// next to a workflow id to restore the workflow later.
type OperationName string

const (
	OpCustomWorkflow            OperationName = "customWorkflow"
	OpSendMessage               OperationName = "sendMessage"
	OpSyncConversation          OperationName = "syncConversation"
	OpCheckConnectionStatus     OperationName = "checkConnectionStatus"
	OpSendConnectionRequest     OperationName = "sendConnectionRequest"
	OpWithdrawConnectionRequest OperationName = "withdrawConnectionRequest"
	OpRetrievePendingRequests   OperationName = "retrievePendingRequests"
	OpRetrieveConnections       OperationName = "retrieveConnections"
	OpRemoveConnection          OperationName = "removeConnection"
	OpSearchCompanies           OperationName = "searchCompanies"
	OpSearchPeople              OperationName = "searchPeople"
	OpFetchPerson               OperationName = "fetchPerson"
	OpFetchCompany              OperationName = "fetchCompany"
	OpFetchPost                 OperationName = "fetchPost"
	OpReactToPost               OperationName = "reactToPost"
	OpCommentOnPost             OperationName = "commentOnPost"
	OpCreatePost                OperationName = "createPost"
	OpRetrieveSSI               OperationName = "retrieveSSI"
	OpRetrievePerformance       OperationName = "retrievePerformance"
	OpNvSendMessage             OperationName = "nvSendMessage"
	OpNvSyncConversation        OperationName = "nvSyncConversation"
	OpNvSearchCompanies         OperationName = "nvSearchCompanies"
	OpNvSearchPeople            OperationName = "nvSearchPeople"
	OpNvFetchCompany            OperationName = "nvFetchCompany"
	OpNvFetchPerson             OperationName = "nvFetchPerson"
)

// OperationNames lists every supported operation in catalog order.
var OperationNames = []OperationName{
	OpCustomWorkflow,
	OpSendMessage,
	OpSyncConversation,
	OpCheckConnectionStatus,
	OpSendConnectionRequest,
	OpWithdrawConnectionRequest,
	OpRetrievePendingRequests,
	OpRetrieveConnections,
	OpRemoveConnection,
	OpSearchCompanies,
	OpSearchPeople,
	OpFetchPerson,
	OpFetchCompany,
	OpFetchPost,
	OpReactToPost,
	OpCommentOnPost,
	OpCreatePost,
	OpRetrieveSSI,
	OpRetrievePerformance,
	OpNvSendMessage,
	OpNvSyncConversation,
	OpNvSearchCompanies,
	OpNvSearchPeople,
	OpNvFetchCompany,
	OpNvFetchPerson,
}

// ErrUnsupportedOperation is returned for operation names outside the catalog.
var ErrUnsupportedOperation = errors.New("linkedapi: unsupported operation")

// Valid reports whether n names a catalog operation.
func (n OperationName) Valid() bool {
	for _, name := range OperationNames {
		if name == n {
			return true
		}
	}
	return false
}
