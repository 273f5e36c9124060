package linkedapi

import (
	"fmt"

	"github.com/linkedapi/linkedapi-go/workflow"
)

var basicInfo = map[string]any{"basicInfo": true}

func sendMessageMapper() *workflow.SimpleMapper[SendMessageParams, workflow.Void] {
	return workflow.NewSimpleMapper[SendMessageParams, workflow.Void]("st.sendMessage", nil)
}

func syncConversationMapper() *workflow.SimpleMapper[SyncConversationParams, workflow.Void] {
	return workflow.NewSimpleMapper[SyncConversationParams, workflow.Void]("st.syncConversation", nil)
}

func checkConnectionStatusMapper() *workflow.SimpleMapper[CheckConnectionStatusParams, CheckConnectionStatusResult] {
	return workflow.NewSimpleMapper[CheckConnectionStatusParams, CheckConnectionStatusResult]("st.checkConnectionStatus", nil)
}

func sendConnectionRequestMapper() *workflow.SimpleMapper[SendConnectionRequestParams, workflow.Void] {
	return workflow.NewSimpleMapper[SendConnectionRequestParams, workflow.Void]("st.sendConnectionRequest", nil)
}

func withdrawConnectionRequestMapper() *workflow.SimpleMapper[WithdrawConnectionRequestParams, workflow.Void] {
	return workflow.NewSimpleMapper[WithdrawConnectionRequestParams, workflow.Void]("st.withdrawConnectionRequest", nil)
}

func retrievePendingRequestsMapper() *workflow.ArrayMapper[workflow.NoParams, PendingRequest] {
	return workflow.NewArrayMapper[workflow.NoParams, PendingRequest]("st.retrievePendingRequests", nil)
}

func retrieveConnectionsMapper() *workflow.ArrayMapper[RetrieveConnectionsParams, Connection] {
	return workflow.NewArrayMapper[RetrieveConnectionsParams, Connection]("st.retrieveConnections", nil)
}

func removeConnectionMapper() *workflow.SimpleMapper[RemoveConnectionParams, workflow.Void] {
	return workflow.NewSimpleMapper[RemoveConnectionParams, workflow.Void]("st.removeConnection", nil)
}

func searchCompaniesMapper() *workflow.ArrayMapper[SearchCompaniesParams, SearchCompanyResult] {
	return workflow.NewArrayMapper[SearchCompaniesParams, SearchCompanyResult]("st.searchCompanies", nil)
}

func searchPeopleMapper() *workflow.ArrayMapper[SearchPeopleParams, SearchPeopleResult] {
	return workflow.NewArrayMapper[SearchPeopleParams, SearchPeopleResult]("st.searchPeople", nil)
}

func fetchPersonMapper() *workflow.ThenMapper[FetchPersonParams, Person] {
	return workflow.NewThenMapper[FetchPersonParams, Person]("st.openPersonPage", basicInfo, []workflow.ChainedAction{
		{Param: "retrieveExperience", ActionType: "st.retrievePersonExperience", Target: "experiences"},
		{Param: "retrieveEducation", ActionType: "st.retrievePersonEducation", Target: "education"},
		{Param: "retrieveSkills", ActionType: "st.retrievePersonSkills", Target: "skills"},
		{Param: "retrieveLanguages", ActionType: "st.retrievePersonLanguages", Target: "languages"},
		{Param: "retrievePosts", ActionType: "st.retrievePersonPosts", ConfigSource: "postsRetrievalConfig", Target: "posts"},
		{Param: "retrieveComments", ActionType: "st.retrievePersonComments", ConfigSource: "commentsRetrievalConfig", Target: "comments"},
		{Param: "retrieveReactions", ActionType: "st.retrievePersonReactions", ConfigSource: "reactionsRetrievalConfig", Target: "reactions"},
	})
}

func fetchCompanyMapper() *workflow.ThenMapper[FetchCompanyParams, Company] {
	return workflow.NewThenMapper[FetchCompanyParams, Company]("st.openCompanyPage", basicInfo, []workflow.ChainedAction{
		{Param: "retrieveEmployees", ActionType: "st.retrieveCompanyEmployees", ConfigSource: "employeesRetrievalConfig", Target: "employees"},
		{Param: "retrieveDMs", ActionType: "st.retrieveCompanyDMs", ConfigSource: "dmsRetrievalConfig", Target: "dms"},
		{Param: "retrievePosts", ActionType: "st.retrieveCompanyPosts", ConfigSource: "postsRetrievalConfig", Target: "posts"},
	})
}

func fetchPostMapper() *workflow.SimpleMapper[FetchPostParams, Post] {
	return workflow.NewSimpleMapper[FetchPostParams, Post]("st.openPost", basicInfo)
}

func reactToPostMapper() *workflow.SimpleMapper[ReactToPostParams, workflow.Void] {
	return workflow.NewSimpleMapper[ReactToPostParams, workflow.Void]("st.reactToPost", nil)
}

func commentOnPostMapper() *workflow.SimpleMapper[CommentOnPostParams, workflow.Void] {
	return workflow.NewSimpleMapper[CommentOnPostParams, workflow.Void]("st.commentOnPost", nil)
}

func createPostMapper() *workflow.SimpleMapper[CreatePostParams, CreatePostResult] {
	return workflow.NewSimpleMapper[CreatePostParams, CreatePostResult]("st.createPost", nil)
}

func retrieveSSIMapper() *workflow.SimpleMapper[workflow.NoParams, SSI] {
	return workflow.NewSimpleMapper[workflow.NoParams, SSI]("st.retrieveSSI", nil)
}

func retrievePerformanceMapper() *workflow.SimpleMapper[workflow.NoParams, Performance] {
	return workflow.NewSimpleMapper[workflow.NoParams, Performance]("st.retrievePerformance", nil)
}

func nvSendMessageMapper() *workflow.SimpleMapper[NvSendMessageParams, workflow.Void] {
	return workflow.NewSimpleMapper[NvSendMessageParams, workflow.Void]("nv.sendMessage", nil)
}

func nvSyncConversationMapper() *workflow.SimpleMapper[NvSyncConversationParams, workflow.Void] {
	return workflow.NewSimpleMapper[NvSyncConversationParams, workflow.Void]("nv.syncConversation", nil)
}

func nvSearchCompaniesMapper() *workflow.ArrayMapper[NvSearchCompaniesParams, NvSearchCompanyResult] {
	return workflow.NewArrayMapper[NvSearchCompaniesParams, NvSearchCompanyResult]("nv.searchCompanies", nil)
}

func nvSearchPeopleMapper() *workflow.ArrayMapper[NvSearchPeopleParams, NvSearchPeopleResult] {
	return workflow.NewArrayMapper[NvSearchPeopleParams, NvSearchPeopleResult]("nv.searchPeople", nil)
}

func nvFetchCompanyMapper() *workflow.ThenMapper[NvFetchCompanyParams, NvCompany] {
	return workflow.NewThenMapper[NvFetchCompanyParams, NvCompany]("nv.openCompanyPage", basicInfo, []workflow.ChainedAction{
		{Param: "retrieveEmployees", ActionType: "nv.retrieveCompanyEmployees", ConfigSource: "employeesRetrievalConfig", Target: "employees"},
		{Param: "retrieveDMs", ActionType: "nv.retrieveCompanyDMs", ConfigSource: "dmsRetrievalConfig", Target: "dms"},
	})
}

func nvFetchPersonMapper() *workflow.ThenMapper[NvFetchPersonParams, NvPerson] {
	return workflow.NewThenMapper[NvFetchPersonParams, NvPerson]("nv.openPersonPage", basicInfo, nil)
}

// NewMapper returns the mapper registered for name, as used to restore a
// workflow from its persisted (id, operation name) pair. Custom workflows
// have no mapper and yield (nil, nil).
func NewMapper(name OperationName) (workflow.ErasedMapper, error) {
	switch name {
	case OpCustomWorkflow:
		return nil, nil
	case OpSendMessage:
		return sendMessageMapper().Erased(), nil
	case OpSyncConversation:
		return syncConversationMapper().Erased(), nil
	case OpCheckConnectionStatus:
		return checkConnectionStatusMapper().Erased(), nil
	case OpSendConnectionRequest:
		return sendConnectionRequestMapper().Erased(), nil
	case OpWithdrawConnectionRequest:
		return withdrawConnectionRequestMapper().Erased(), nil
	case OpRetrievePendingRequests:
		return retrievePendingRequestsMapper().Erased(), nil
	case OpRetrieveConnections:
		return retrieveConnectionsMapper().Erased(), nil
	case OpRemoveConnection:
		return removeConnectionMapper().Erased(), nil
	case OpSearchCompanies:
		return searchCompaniesMapper().Erased(), nil
	case OpSearchPeople:
		return searchPeopleMapper().Erased(), nil
	case OpFetchPerson:
		return fetchPersonMapper().Erased(), nil
	case OpFetchCompany:
		return fetchCompanyMapper().Erased(), nil
	case OpFetchPost:
		return fetchPostMapper().Erased(), nil
	case OpReactToPost:
		return reactToPostMapper().Erased(), nil
	case OpCommentOnPost:
		return commentOnPostMapper().Erased(), nil
	case OpCreatePost:
		return createPostMapper().Erased(), nil
	case OpRetrieveSSI:
		return retrieveSSIMapper().Erased(), nil
	case OpRetrievePerformance:
		return retrievePerformanceMapper().Erased(), nil
	case OpNvSendMessage:
		return nvSendMessageMapper().Erased(), nil
	case OpNvSyncConversation:
		return nvSyncConversationMapper().Erased(), nil
	case OpNvSearchCompanies:
		return nvSearchCompaniesMapper().Erased(), nil
	case OpNvSearchPeople:
		return nvSearchPeopleMapper().Erased(), nil
	case OpNvFetchCompany:
		return nvFetchCompanyMapper().Erased(), nil
	case OpNvFetchPerson:
		return nvFetchPersonMapper().Erased(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, name)
	}
}
