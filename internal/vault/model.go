package vault

import (
	"time"

	"github.com/google/uuid"
)

// ImportCommand asks the service to import a batch (or a single object)
// directory from the import area.
type ImportCommand struct {
	Path                              string `json:"path"`
	SingleObject                      bool   `json:"singleObject"`
	AcceptTimestampVersionDirectories bool   `json:"acceptTimestampVersionDirectories"`
}

// ImportJob is the service's view of an import.
type ImportJob struct {
	ID                                uuid.UUID  `json:"id" yaml:"id"`
	Path                              string     `json:"path" yaml:"path"`
	SingleObject                      bool       `json:"singleObject" yaml:"singleObject"`
	AcceptTimestampVersionDirectories bool       `json:"acceptTimestampVersionDirectories" yaml:"acceptTimestampVersionDirectories"`
	Status                            string     `json:"status,omitempty" yaml:"status,omitempty"`
	Message                           string     `json:"message,omitempty" yaml:"message,omitempty"`
	CreationTime                      *time.Time `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
}

// LayerStatus describes one storage layer.
type LayerStatus struct {
	LayerID     int64  `json:"layerId" yaml:"layerId"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
	SizeInBytes int64  `json:"sizeInBytes,omitempty" yaml:"sizeInBytes,omitempty"`
}

// ConsistencyCheckType selects what a consistency check compares.
type ConsistencyCheckType string

const (
	// CheckListingRecords compares the listing records of one layer with storage.
	CheckListingRecords ConsistencyCheckType = "LISTING_RECORDS"
	// CheckLayerIDs compares the layer ids on storage with those in the database.
	CheckLayerIDs ConsistencyCheckType = "LAYER_IDS"
)

// ConsistencyCheckRequest starts a consistency check. LayerID is only used
// with CheckListingRecords.
type ConsistencyCheckRequest struct {
	Type    ConsistencyCheckType `json:"type"`
	LayerID *int64               `json:"layerId,omitempty"`
}

// ConsistencyCheck is the service's view of a consistency check.
type ConsistencyCheck struct {
	ID           uuid.UUID            `json:"id" yaml:"id"`
	Type         ConsistencyCheckType `json:"type" yaml:"type"`
	LayerID      *int64               `json:"layerId,omitempty" yaml:"layerId,omitempty"`
	Result       string               `json:"result,omitempty" yaml:"result,omitempty"`
	Message      string               `json:"message,omitempty" yaml:"message,omitempty"`
	CreationTime *time.Time           `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
	StartTime    *time.Time           `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime      *time.Time           `json:"endTime,omitempty" yaml:"endTime,omitempty"`
}
