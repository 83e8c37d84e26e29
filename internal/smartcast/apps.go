// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smartcast

import "strings"

// Static app registry. appHome holds the single launcher entry, apps the
// rest of the known catalog. Both are read-only after init and safe for
// unsynchronized concurrent reads.
//
// Lookups scan home first, then apps, and the first match wins. Table
// order is load-bearing: "Toon Goggles" and "Vudu" share
// (APP_ID "21", NAME_SPACE 2), so a reverse lookup of that pair always
// reports Toon Goggles.

func strp(s string) *string { return &s }

var appHome = []AppDefinition{
	{
		Name:    "SmartCast Home",
		Country: []string{"*"},
		Config:  NewAppConfig("1", 4, strp("http://127.0.0.1:12345/scfs/sctv/main.html")),
	},
}

var apps = []AppDefinition{
	{Name: "Prime Video", Country: []string{"*"}, CatalogID: "33", Config: NewAppConfig("4", 2, nil)},
	{Name: "CBS All Access", Country: []string{"usa"}, CatalogID: "9", Config: NewAppConfig("37", 2, nil)},
	{Name: "CBS News", Country: []string{"usa", "can"}, CatalogID: "56", Config: NewAppConfig("42", 2, nil)},
	{Name: "Crackle", Country: []string{"usa"}, CatalogID: "8", Config: NewAppConfig("5", 2, nil)},
	{Name: "Curiosity Stream", Country: []string{"usa", "can"}, CatalogID: "37", Config: NewAppConfig("12", 2, nil)},
	{Name: "Fandango Now", Country: []string{"usa"}, CatalogID: "24", Config: NewAppConfig("7", 2, nil)},
	{Name: "FilmRise", Country: []string{"usa"}, CatalogID: "47", Config: NewAppConfig("24", 2, nil)},
	{Name: "Flixfling", Country: []string{"*"}, CatalogID: "49", Config: NewAppConfig("36", 2, nil)},
	{Name: "Haystack TV", Country: []string{"usa", "can"}, CatalogID: "35", Config: NewAppConfig("898AF734", 0,
		strp(`{"CAST_NAMESPACE":"urn:x-cast:com.google.cast.media","CAST_MESSAGE":{"type":"LOAD","media":{},"autoplay":true,"currentTime":0,"customData":{"platform":"sctv"}}}`))},
	{Name: "Hulu", Country: []string{"usa"}, CatalogID: "19", Config: NewAppConfig("3", 2, nil)},
	{Name: "iHeartRadio", Country: []string{"usa"}, CatalogID: "11", Config: NewAppConfig("6", 2, nil)},
	{Name: "NBC", Country: []string{"usa"}, CatalogID: "43", Config: NewAppConfig("10", 2, nil)},
	{Name: "Netflix", Country: []string{"*"}, CatalogID: "34", Config: NewAppConfig("1", 3, nil)},
	{Name: "Plex", Country: []string{"usa", "can"}, CatalogID: "40", Config: NewAppConfig("9", 2, nil)},
	{Name: "Pluto TV", Country: []string{"usa"}, CatalogID: "12", Config: NewAppConfig("E6F74C01", 0,
		strp(`{"CAST_NAMESPACE":"urn:x-cast:tv.pluto","CAST_MESSAGE":{"command":"initializePlayback","channel":"","episode":"","time":0}}`))},
	{Name: "RedBox", Country: []string{"usa"}, CatalogID: "55", Config: NewAppConfig("41", 2, nil)},
	{Name: "TasteIt", Country: []string{"*"}, CatalogID: "52", Config: NewAppConfig("26", 2, nil)},
	{Name: "Toon Goggles", Country: []string{"usa", "can"}, CatalogID: "46", Config: NewAppConfig("21", 2, nil)},
	{Name: "Vudu", Country: []string{"usa"}, CatalogID: "6", Config: NewAppConfig("21", 2,
		strp("https://my.vudu.com/castReceiver/index.html?launch-source=app-icon"))},
	{Name: "XUMO", Country: []string{"usa"}, CatalogID: "27", Config: NewAppConfig("36E1EA1F", 0,
		strp(`{"CAST_NAMESPACE":"urn:x-cast:com.google.cast.media","CAST_MESSAGE":{"type":"LOAD","media":{},"autoplay":true,"currentTime":0,"customData":{}}}`))},
	{Name: "YouTubeTV", Country: []string{"usa", "mexico"}, CatalogID: "45", Config: NewAppConfig("3", 5, nil)},
	{Name: "YouTube", Country: []string{"*"}, CatalogID: "44", Config: NewAppConfig("1", 5, nil)},
	{Name: "Baeble", Country: []string{"usa"}, CatalogID: "39", Config: NewAppConfig("11", 2, nil)},
	{Name: "DAZN", Country: []string{"usa", "can"}, CatalogID: "57", Config: NewAppConfig("34", 2, nil)},
	{Name: "FitFusion by Jillian Michaels", Country: []string{"usa", "can"}, CatalogID: "54", Config: NewAppConfig("39", 2, nil)},
	{Name: "Newsy", Country: []string{"usa", "can"}, CatalogID: "38", Config: NewAppConfig("15", 2, nil)},
	{Name: "Cocoro TV", Country: []string{"usa", "can"}, CatalogID: "63", Config: NewAppConfig("55", 2, nil)},
	{Name: "ConTV", Country: []string{"usa", "can"}, CatalogID: "41", Config: NewAppConfig("18", 2, nil)},
	{Name: "Dove Channel", Country: []string{"usa", "can"}, CatalogID: "42", Config: NewAppConfig("16", 2, nil)},
	{Name: "Love Destination", Country: []string{"*"}, CatalogID: "64", Config: NewAppConfig("57", 2, nil)},
	{Name: "WatchFree", Country: []string{"usa"}, CatalogID: "48", Config: NewAppConfig("22", 2, nil)},
	{Name: "AsianCrush", Country: []string{"usa", "can"}, CatalogID: "50", Config: NewAppConfig("27", 2,
		strp("https://html5.asiancrush.com/?ua=viziosmartcast"))},
}

// FindAppByName looks up an app by display name, case-insensitively.
// Returns the first matching definition over home ++ apps, or false.
func FindAppByName(name string) (AppDefinition, bool) {
	for _, def := range appHome {
		if strings.EqualFold(def.Name, name) {
			return def, true
		}
	}
	for _, def := range apps {
		if strings.EqualFold(def.Name, name) {
			return def, true
		}
	}
	return AppDefinition{}, false
}

// FindAppByConfig reverse-looks-up an app by (APP_ID, NAME_SPACE). The
// MESSAGE field is not part of the match key. First entry in table order
// wins, which decides the Toon Goggles / Vudu ambiguity.
func FindAppByConfig(appID string, nameSpace int) (AppDefinition, bool) {
	for _, def := range appHome {
		if configMatches(def.Config, appID, nameSpace) {
			return def, true
		}
	}
	for _, def := range apps {
		if configMatches(def.Config, appID, nameSpace) {
			return def, true
		}
	}
	return AppDefinition{}, false
}

func configMatches(c AppConfig, appID string, nameSpace int) bool {
	return c.AppID != nil && *c.AppID == appID &&
		c.NameSpace != nil && *c.NameSpace == nameSpace
}

// AppNames returns the display names of every catalog entry, launcher
// first, in table order
func AppNames() []string {
	names := make([]string, 0, len(appHome)+len(apps))
	for _, def := range appHome {
		names = append(names, def.Name)
	}
	for _, def := range apps {
		names = append(names, def.Name)
	}
	return names
}
