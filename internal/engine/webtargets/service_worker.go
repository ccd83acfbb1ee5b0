package webtargets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// coreResources are fetched eagerly on install when present.
var coreResources = []string{
	"main.dart.js",
	"main.dart.wasm",
	"main.dart.mjs",
	"index.html",
	"flutter_bootstrap.js",
	"assets/AssetManifest.bin.json",
	"assets/FontManifest.json",
}

type serviceWorkerAction struct {
	logger ports.Logger
}

// Run writes the service worker for the configured strategy into the output
// directory.
func (a *serviceWorkerAction) Run(ctx context.Context, env *domain.Environment) error {
	strategy := domain.ServiceWorkerStrategy(env.Defines[domain.KeyServiceWorkerStrategy])
	path := filepath.Join(env.OutputDir, domain.ServiceWorkerFileName)

	var script []byte
	if strategy == domain.ServiceWorkerNone {
		script = []byte(unregisteringWorker)
	} else {
		manifest, err := ResourceManifest(ctx, env.OutputDir)
		if err != nil {
			return zerr.Wrap(err, domain.ErrServiceWorkerWriteFailed.Error())
		}
		script, err = RenderServiceWorker(manifest)
		if err != nil {
			return zerr.Wrap(err, domain.ErrServiceWorkerWriteFailed.Error())
		}
	}

	if err := os.MkdirAll(env.OutputDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServiceWorkerWriteFailed.Error()), "path", path)
	}
	if err := writeFile(path, script); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServiceWorkerWriteFailed.Error()), "path", path)
	}

	a.logger.Trace(fmt.Sprintf("wrote %s (%s)", domain.ServiceWorkerFileName, strategy))
	return nil
}

// ResourceManifest maps every file of the output directory, by slash
// separated relative path, to the hash of its content. The service worker
// itself is excluded and index.html is also served as "/".
func ResourceManifest(ctx context.Context, outputDir string) (map[string]string, error) {
	manifest := make(map[string]string)
	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == domain.ServiceWorkerFileName {
			return nil
		}

		//nolint:gosec // path is inside the output directory
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		manifest[rel] = strconv.FormatUint(xxhash.Sum64(data), 16)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if hash, ok := manifest[indexFileName]; ok {
		manifest["/"] = hash
	}
	return manifest, nil
}

// RenderServiceWorker renders the offline-first service worker for manifest.
// The output is deterministic for a given manifest.
func RenderServiceWorker(manifest map[string]string) ([]byte, error) {
	resources, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}

	core := make([]string, 0, len(coreResources))
	for _, r := range coreResources {
		if _, ok := manifest[r]; ok {
			core = append(core, r)
		}
	}
	coreJSON, err := json.Marshal(core)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = offlineFirstTemplate.Execute(&buf, struct {
		Version   string
		Resources string
		Core      string
	}{
		Version:   strconv.FormatUint(xxhash.Sum64(resources), 16),
		Resources: string(resources),
		Core:      string(coreJSON),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var offlineFirstTemplate = template.Must(template.New("service_worker").Parse(`'use strict';
const SERVICE_WORKER_VERSION = '{{.Version}}';
const MANIFEST = 'flutter-app-manifest';
const TEMP = 'flutter-temp-cache';
const CACHE_NAME = 'flutter-app-cache';

const RESOURCES = {{.Resources}};
// The application shell files that are downloaded before a service worker can
// start.
const CORE = {{.Core}};

// During install, the TEMP cache is populated with the application shell files.
self.addEventListener("install", (event) => {
  self.skipWaiting();
  return event.waitUntil(
    caches.open(TEMP).then((cache) => {
      return cache.addAll(
        CORE.map((value) => new Request(value, {'cache': 'reload'})));
    })
  );
});

// During activate, the cache is populated with the temp files downloaded in
// install. Resources whose hash changed are evicted.
self.addEventListener("activate", function(event) {
  return event.waitUntil(async function() {
    try {
      var contentCache = await caches.open(CACHE_NAME);
      var tempCache = await caches.open(TEMP);
      var manifestCache = await caches.open(MANIFEST);
      var manifest = await manifestCache.match('manifest');
      if (!manifest) {
        await caches.delete(CACHE_NAME);
        contentCache = await caches.open(CACHE_NAME);
        for (var request of await tempCache.keys()) {
          var response = await tempCache.match(request);
          await contentCache.put(request, response);
        }
        await caches.delete(TEMP);
        await manifestCache.put('manifest', new Response(JSON.stringify(RESOURCES)));
        self.clients.claim();
        return;
      }
      var oldManifest = await manifest.json();
      var origin = self.location.origin;
      for (var request of await contentCache.keys()) {
        var key = request.url.substring(origin.length + 1);
        if (key == "") {
          key = "/";
        }
        if (!RESOURCES[key] || RESOURCES[key] != oldManifest[key]) {
          await contentCache.delete(request);
        }
      }
      for (var request of await tempCache.keys()) {
        var response = await tempCache.match(request);
        await contentCache.put(request, response);
      }
      await caches.delete(TEMP);
      await manifestCache.put('manifest', new Response(JSON.stringify(RESOURCES)));
      self.clients.claim();
      return;
    } catch (err) {
      console.error('Failed to upgrade service worker: ' + err);
      await caches.delete(CACHE_NAME);
      await caches.delete(TEMP);
      await caches.delete(MANIFEST);
    }
  }());
});

// The fetch handler redirects requests for RESOURCE files to the service
// worker cache.
self.addEventListener("fetch", (event) => {
  if (event.request.method !== 'GET') {
    return;
  }
  var origin = self.location.origin;
  var key = event.request.url.substring(origin.length + 1);
  if (key.indexOf('?v=') != -1) {
    key = key.split('?v=')[0];
  }
  if (event.request.url == origin || event.request.url.startsWith(origin + '/#') || key == '') {
    key = '/';
  }
  if (!RESOURCES[key]) {
    return;
  }
  if (key == '/') {
    return onlineFirst(event);
  }
  event.respondWith(caches.open(CACHE_NAME)
    .then((cache) =>  {
      return cache.match(event.request).then((response) => {
        return response || fetch(event.request).then((response) => {
          if (response && Boolean(response.ok)) {
            cache.put(event.request, response.clone());
          }
          return response;
        });
      })
    })
  );
});

// Attempt to download the resource online before falling back to the offline
// cache.
function onlineFirst(event) {
  return event.respondWith(
    fetch(event.request).then((response) => {
      return caches.open(CACHE_NAME).then((cache) => {
        cache.put(event.request, response.clone());
        return response;
      });
    }).catch((error) => {
      return caches.open(CACHE_NAME).then((cache) => {
        return cache.match(event.request).then((response) => {
          if (response != null) {
            return response;
          }
          throw error;
        });
      });
    })
  );
}
`))

const unregisteringWorker = `'use strict';
// This service worker removes itself and the caches of previous versions.
self.addEventListener('install', () => {
  self.skipWaiting();
});

self.addEventListener('activate', (event) => {
  event.waitUntil(async function() {
    for (const name of await caches.keys()) {
      await caches.delete(name);
    }
    await self.registration.unregister();
    const clients = await self.clients.matchAll({type: 'window'});
    for (const client of clients) {
      client.navigate(client.url);
    }
  }());
});
`
