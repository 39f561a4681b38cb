package datasource_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opst/paikit/pkg/lineage/datasource"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFileReader(t *testing.T) {
	t.Run("it reads the config", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		testee := datasource.NewFileReader("./testdata/datasource.json", zap.New(core))

		conf, ok := testee.Read()
		if !ok {
			t.Fatal("config is unavailable")
		}
		if conf.RegionId != "cn-hangzhou" || len(conf.DataSources) != 3 {
			t.Errorf("unexpected config: %+v", conf)
		}
		if logs.Len() != 0 {
			t.Errorf("unexpected logs: %+v", logs.All())
		}
	})

	for name, path := range map[string]string{
		"missing": "./testdata/missing.json",
		"broken":  "./testdata/broken.json",
	} {
		t.Run("when the config is "+name+", it is unavailable with warning", func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			testee := datasource.NewFileReader(path, zap.New(core))

			conf, ok := testee.Read()
			if ok || conf != nil {
				t.Errorf("config is available: %+v", conf)
			}
			if logs.FilterMessage("datasource config is unavailable").Len() != 1 {
				t.Errorf("warning is not logged: %+v", logs.All())
			}
		})
	}
}

func TestStatic(t *testing.T) {
	if _, ok := (datasource.Static{}).Read(); ok {
		t.Error("nil config is available")
	}
	conf := &datasource.Config{RegionId: "cn-beijing"}
	if actual, ok := (datasource.Static{Config: conf}).Read(); !ok || actual != conf {
		t.Errorf("unexpected result: %+v, %v", actual, ok)
	}
}

func TestCachedReader(t *testing.T) {
	write := func(t *testing.T, path string, region string) {
		t.Helper()
		content := `{"DLC_REGION_ID": "` + region + `", "DATA_SOURCES": []}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("it keeps the config until the file is modified", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "datasource.json")
		write(t, path, "cn-hangzhou")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		testee := datasource.NewCachedReader(ctx, path, zap.NewNop())

		first, ok := testee.Read()
		if !ok || first.RegionId != "cn-hangzhou" {
			t.Fatalf("unexpected config: %+v, %v", first, ok)
		}
		if second, _ := testee.Read(); second != first {
			t.Error("config is not cached")
		}

		write(t, path, "cn-beijing")

		deadline := time.Now().Add(5 * time.Second)
		for {
			conf, ok := testee.Read()
			if ok && conf.RegionId == "cn-beijing" {
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("config is not refreshed: %+v", conf)
			}
			time.Sleep(10 * time.Millisecond)
		}
	})

	t.Run("when the file appears later, it reads that", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "datasource.json")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		testee := datasource.NewCachedReader(ctx, path, zap.NewNop())

		if _, ok := testee.Read(); ok {
			t.Fatal("missing config is available")
		}

		write(t, path, "cn-shanghai")
		conf, ok := testee.Read()
		if !ok || conf.RegionId != "cn-shanghai" {
			t.Errorf("unexpected config: %+v, %v", conf, ok)
		}
	})
}
