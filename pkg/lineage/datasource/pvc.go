package datasource

import (
	"context"

	"go.uber.org/zap"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	kuberest "k8s.io/client-go/rest"
)

// PVCInspector completes a PVCLocation with what the cluster knows.
type PVCInspector interface {
	// Inspect returns loc with its missing fields filled, as far as it can.
	//
	// It never fails; on error, loc is returned as is.
	Inspect(ctx context.Context, loc PVCLocation) PVCLocation
}

type kubePVCInspector struct {
	client kubernetes.Interface
	logger *zap.Logger
}

// NewKubePVCInspector returns a PVCInspector asking the kubernetes API for claims.
//
// It fills PvcType with the storage class of the claim when the datasource config omits it.
func NewKubePVCInspector(client kubernetes.Interface, logger *zap.Logger) PVCInspector {
	return &kubePVCInspector{client: client, logger: logger}
}

// InClusterPVCInspector connects the kubernetes API with in-cluster credentials of the pod.
func InClusterPVCInspector(logger *zap.Logger) (PVCInspector, error) {
	conf, err := kuberest.InClusterConfig()
	if err != nil {
		return nil, err
	}
	clientset, err := kubernetes.NewForConfig(conf)
	if err != nil {
		return nil, err
	}
	return NewKubePVCInspector(clientset, logger), nil
}

func (k *kubePVCInspector) Inspect(ctx context.Context, loc PVCLocation) PVCLocation {
	if loc.PvcType != "" || loc.PvcName == "" || loc.Namespace == "" {
		return loc
	}

	pvc, err := k.client.CoreV1().PersistentVolumeClaims(loc.Namespace).Get(
		ctx, loc.PvcName, kubeapimeta.GetOptions{},
	)
	if err != nil {
		k.logger.Debug(
			"cannot inspect persistent volume claim",
			zap.String("namespace", loc.Namespace),
			zap.String("pvc", loc.PvcName),
			zap.Error(err),
		)
		return loc
	}
	if sc := pvc.Spec.StorageClassName; sc != nil && *sc != "" {
		loc.PvcType = *sc
	}
	return loc
}
