package registry

// ActivityRegistry is the catalogue of task types a process modeler can bind
// service tasks to.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID                   string      `json:"id"`
	DisplayName          string      `json:"displayName"`
	Description          string      `json:"description"`
	Category             string      `json:"category"`
	Version              string      `json:"version"`
	TaskType             string      `json:"taskType"`
	ImplementationStatus string      `json:"implementationStatus"`
	InputSchema          interface{} `json:"inputSchema"`
	ErrorCodes           []string    `json:"errorCodes"`
	Timeout              string      `json:"timeout"`
	MaxJobsActive        int         `json:"maxJobsActive"`
	Tags                 []string    `json:"tags"`
}
