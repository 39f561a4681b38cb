package lineage

import (
	apilineage "github.com/opst/paikit/pkg/api/types/lineage"
)

type EntityType string

const (
	NASFileType         EntityType = "nas-file"
	PVCFileType         EntityType = "pvc-file"
	OSSFileType         EntityType = "oss-file"
	PAIDatasetType      EntityType = "pai-dataset"
	MaxComputeTableType EntityType = "maxcompute-table"
)

// attribute keys on the wire
const (
	attrResourceType = "ResourceType"
	attrResourceUse  = "ResourceUse"
	attrRegionId     = "RegionId"
	attrFileSystemId = "FileSystemId"
	attrPath         = "Path"
	attrClusterId    = "ClusterId"
	attrNameSpace    = "NameSpace"
	attrPvcName      = "PvcName"
	attrPvcType      = "PvcType"
	attrBucket       = "Bucket"
	attrProvider     = "Provider"
	attrUri          = "Uri"
	attrVersionName  = "VersionName"
)

// Normalized is a resolved lineage entity.
//
// It is one of NASFile, PVCFile, OSSFile, PAIDataset or MaxComputeTable.
type Normalized interface {
	EntityType() EntityType

	// Wire converts it to the form of the registration API.
	Wire() apilineage.Entity

	normalized()
}

// NASFile is a file on NAS or CPFS mounted into the job.
type NASFile struct {
	ResourceType string
	ResourceUse  string
	RegionId     string
	FileSystemId string
	Path         string
}

func (NASFile) normalized() {}

func (NASFile) EntityType() EntityType { return NASFileType }

func (n NASFile) Wire() apilineage.Entity {
	return apilineage.Entity{
		EntityType: string(NASFileType),
		Attributes: map[string]string{
			attrResourceType: n.ResourceType,
			attrResourceUse:  n.ResourceUse,
			attrRegionId:     n.RegionId,
			attrFileSystemId: n.FileSystemId,
			attrPath:         n.Path,
		},
	}
}

// PVCFile is a file on a persistent volume claim mounted into the job.
type PVCFile struct {
	ResourceType string
	ResourceUse  string
	RegionId     string
	ClusterId    string
	NameSpace    string
	PvcName      string
	Path         string
	PvcType      string
}

func (PVCFile) normalized() {}

func (PVCFile) EntityType() EntityType { return PVCFileType }

func (p PVCFile) Wire() apilineage.Entity {
	return apilineage.Entity{
		EntityType: string(PVCFileType),
		Attributes: map[string]string{
			attrResourceType: p.ResourceType,
			attrResourceUse:  p.ResourceUse,
			attrRegionId:     p.RegionId,
			attrClusterId:    p.ClusterId,
			attrNameSpace:    p.NameSpace,
			attrPvcName:      p.PvcName,
			attrPath:         p.Path,
			attrPvcType:      p.PvcType,
		},
	}
}

// OSSFile is an object in object storage.
type OSSFile struct {
	Bucket       string
	Path         string
	ResourceType string
	ResourceUse  string
	RegionId     string
}

func (OSSFile) normalized() {}

func (OSSFile) EntityType() EntityType { return OSSFileType }

func (o OSSFile) Wire() apilineage.Entity {
	return apilineage.Entity{
		EntityType: string(OSSFileType),
		Attributes: map[string]string{
			attrBucket:       o.Bucket,
			attrPath:         o.Path,
			attrResourceType: o.ResourceType,
			attrResourceUse:  o.ResourceUse,
			attrRegionId:     o.RegionId,
		},
	}
}

// PAIDataset is a version of a dataset registered in the platform.
type PAIDataset struct {
	QualifiedName string
	Name          string
	ResourceUse   string

	// Provider is "pai" for datasets managed by the platform.
	// Otherwise, it is empty and the fields below are set.
	Provider string

	ResourceType string
	RegionId     string
	Uri          string
	VersionName  string
}

func (PAIDataset) normalized() {}

func (PAIDataset) EntityType() EntityType { return PAIDatasetType }

func (d PAIDataset) Wire() apilineage.Entity {
	attrs := map[string]string{attrResourceUse: d.ResourceUse}
	if d.Provider != "" {
		attrs[attrProvider] = d.Provider
	} else {
		attrs[attrResourceType] = d.ResourceType
		attrs[attrRegionId] = d.RegionId
		attrs[attrUri] = d.Uri
		attrs[attrVersionName] = d.VersionName
	}
	return apilineage.Entity{
		Name:          d.Name,
		QualifiedName: d.QualifiedName,
		Attributes:    attrs,
	}
}

// MaxComputeTable is a table in the data warehouse.
type MaxComputeTable struct {
	QualifiedName string
	ResourceType  string
	ResourceUse   string
}

func (MaxComputeTable) normalized() {}

func (MaxComputeTable) EntityType() EntityType { return MaxComputeTableType }

func (t MaxComputeTable) Wire() apilineage.Entity {
	return apilineage.Entity{
		QualifiedName: t.QualifiedName,
		Attributes: map[string]string{
			attrResourceType: t.ResourceType,
			attrResourceUse:  t.ResourceUse,
		},
	}
}

// Wire converts each Normalized to the form of the registration API.
func Wire(ns []Normalized) []apilineage.Entity {
	ret := make([]apilineage.Entity, 0, len(ns))
	for _, n := range ns {
		ret = append(ret, n.Wire())
	}
	return ret
}
