package mapgen

// mapTemplate is the single-page Leaflet map. Everything is inlined so the
// output file works standalone from disk, with only tile and library assets
// fetched from CDNs.
const mapTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.css">
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css">
<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/4.7.0/css/font-awesome.min.css">
<style>
  html, body, #map { height: 100%; margin: 0; }
  .license-marker i { font-size: 18px; text-shadow: 0 0 2px #fff; }
  .legend {
    background: #fff; padding: 8px 12px; border-radius: 4px;
    box-shadow: 0 1px 4px rgba(0,0,0,0.3); font: 12px sans-serif;
    max-height: 320px; overflow-y: auto;
  }
  .legend h4 { margin: 0 0 6px; }
  .legend .swatch {
    display: inline-block; width: 12px; height: 12px;
    margin-right: 6px; border-radius: 2px; vertical-align: middle;
  }
</style>
</head>
<body>
<div id="map"></div>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"></script>
<script>
var markers = {{.MarkersJSON}};
var layerDefs = {{.LayersJSON}};

var map = L.map('map', {
  center: [{{.CenterLat}}, {{.CenterLon}}],
  zoom: {{.ZoomStart}}
});

var light = L.tileLayer('https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png', {
  attribution: '&copy; OpenStreetMap contributors &copy; CARTO'
});
var osm = L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
});
var satellite = L.tileLayer('https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}', {
  attribution: 'Esri'
});
light.addTo(map);

var baseLayers = {
  'Street Map (Light)': light,
  'Street Map (OpenStreetMap)': osm,
  'Satellite View': satellite
};

var groups = {};
var overlays = {};
layerDefs.forEach(function (def) {
  var cluster = L.markerClusterGroup({
    maxClusterRadius: {{.MaxClusterRadius}},
    spiderfyOnMaxZoom: true,
    showCoverageOnHover: false,
    zoomToBoundsOnClick: true,
    disableClusteringAtZoom: {{.DisableClusteringAtZoom}}
  });
  groups[def.Key] = cluster;
  overlays[def.Name] = cluster;
  cluster.addTo(map);
});

function esc(s) {
  return String(s == null ? '' : s)
    .replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;');
}

markers.forEach(function (m) {
  var icon = L.divIcon({
    className: 'license-marker',
    html: '<i class="fa fa-' + m.icon + '" style="color:' + m.color + '"></i>',
    iconSize: [20, 20],
    iconAnchor: [10, 10]
  });

  var popup = '<b>' + esc(m.name) + '</b><br>' +
    esc(m.address) + '<br>' +
    esc(m.category) + (m.class ? ' (Class ' + esc(m.class) + ')' : '') +
    ' &middot; ' + esc(m.market) + '<br>' +
    'Status: ' + esc(m.status);
  if (m.record_number) {
    popup += '<br>Record: ' + esc(m.record_number);
  }
  if (m.expiration) {
    popup += '<br>Expires: ' + esc(m.expiration);
  }
  if (m.precision === 'city') {
    popup += '<br><i>Approximate (city-level) location</i>';
  }
  if (m.stacked > 1) {
    popup += '<br><i>' + m.stacked + ' licenses at this location</i>';
  }

  var marker = L.marker([m.lat, m.lon], { icon: icon, opacity: m.opacity });
  marker.bindPopup(popup);

  var group = groups[m.layer] || groups['inactive'];
  if (group) {
    group.addLayer(marker);
  }
});

{{if .HasBoundary}}
L.geoJSON({{.BoundaryJSON}}, {
  style: { color: '#555555', weight: 2, fill: false },
  interactive: false
}).addTo(map);
{{end}}

L.control.layers(baseLayers, overlays, { collapsed: false }).addTo(map);

var legend = L.control({ position: 'bottomleft' });
legend.onAdd = function () {
  var div = L.DomUtil.create('div', 'legend');
  div.innerHTML = '<h4>License Types</h4>' +
    {{range .LegendEntries}}'<div><span class="swatch" style="background:{{.Color}}"></span>{{.Label}}</div>' +
    {{end}}'';
  return div;
};
legend.addTo(map);
</script>
</body>
</html>
`
