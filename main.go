// Package classification rfpcopilot API
//
// RFP Copilot API
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//     Schemes: https
//     BasePath: /api/v1
//     Version: 0.0.1
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"rfpcopilot_backend/app/core"
	"rfpcopilot_backend/app/librarybundle"
	"rfpcopilot_backend/app/projectbundle"
	"rfpcopilot_backend/app/systembundle"
	"rfpcopilot_backend/app/tableconfig"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
)

var (
	ormDB *gorm.DB
	Users map[string]core.User
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

func main() {

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("----")
	startServer()
	log.Println("----")

}

func initBundles(users *map[string]core.User) []core.Bundle {
	return []core.Bundle{
		systembundle.NewSystemBundle(ormDB, users),
		projectbundle.NewProjectBundle(ormDB, users),
		librarybundle.NewLibraryBundle(ormDB, users),
		tableconfig.NewTableConfigBundle(ormDB, users),
	}
}

// Server starten mit: rfpcopilot_backend -configFile=/var/rfpcopilot/config.json
func startServer() error {

	configFile := ""
	flag.StringVar(&configFile, "configFile", "config.json", "a string")
	flag.Parse()

	if configFile == "" {
		configFile = "config.json"
	}
	log.Println("using configfile: ", configFile)
	log.Println("----")

	file, _ := os.Open(configFile)
	decoder := json.NewDecoder(file)
	core.Config = core.Configuration{}
	err := decoder.Decode(&core.Config)
	if err != nil {
		log.Println("error: ", err)
	}

	core.GetEnvironmentConfig(&core.Config)

	dataSourceName := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", core.Config.Database.User, core.Config.Database.Password, core.Config.Database.Host, core.Config.Database.Port, core.Config.Database.Database)
	log.Print("connecting to database... ")
	ormdb, err := gorm.Open("mysql", dataSourceName)
	for err != nil {
		log.Println(err)
		time.Sleep(3 * time.Second)
		ormdb, err = gorm.Open("mysql", dataSourceName)
	}
	log.Println("done")

	ormdb.Exec("SET NAMES utf8")
	ormdb.Exec("SET time_zone = \"+00:00\"")
	ormdb.Exec("SET @@session.time_zone = \"+00:00\"")
	ormDB = ormdb
	ormDB.LogMode(core.Config.Database.Debug)

	Users = make(map[string]core.User)

	accountsSessions := systembundle.SystemAccountsSessions{}
	ormdb.Preload("Account").Find(&accountsSessions)

	log.Print("reading account sessions tokens... ")
	for _, session := range accountsSessions {
		session.Account.Token = session.SessionToken
		Users[session.SessionToken] = session.Account
	}
	log.Println("done")

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1/").Subrouter()

	log.Print("Adding routes... ")
	for _, b := range initBundles(&Users) {
		for _, route := range b.GetRoutes() {
			s.Handle(route.Path, middleWare(route.Handler)).Methods(route.Method)
		}
	}
	log.Println("done")

	tableconfig.Register4TableConfig(projectbundle.BulkProject{})
	tableconfig.Register4TableConfig(librarybundle.Skill{})
	tableconfig.Register4TableConfig(librarybundle.LibraryDocument{})
	tableconfig.Register4TableConfig(librarybundle.ReferenceUrl{})

	address := fmt.Sprintf(":%d", core.Config.Server.InternalPort)
	log.Println(address)

	if core.Config.Server.WithSSL {
		log.Fatal(http.ListenAndServeTLS(address, core.Config.Server.SSLCertFile, core.Config.Server.SSLKeyFile, r))
	} else {
		log.Fatal(http.ListenAndServe(address, r))
	}

	return nil
}

func isOpenRoute(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	if r.RequestURI == "/api/v1/system/login" {
		return true
	}
	if strings.HasPrefix(r.RequestURI, "/api/v1/ws/") && r.RequestURI != "/api/v1/ws/ticket" {
		return true
	}
	return false
}

func middleWare(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now().UnixNano()

		auth := r.Header.Get("Authorization")
		user := core.User{}
		ok := false
		var userId uint = 0
		tmp := strings.Split(auth, " ")
		if len(tmp) == 2 {
			if user, ok = Users[tmp[1]]; ok {
				userId = user.ID
			}
		}

		if userId == 0 && !isOpenRoute(r) {
			w.Header().Add("Content-Type", "application/json")
			w.Header().Add("Access-Control-Allow-Origin", "*")
			w.WriteHeader(http.StatusUnauthorized)
			msg := core.HandleErrorData{
				Status:  997,
				Message: "You are not authorized, please login!",
			}
			b, _ := json.Marshal(msg)
			io.WriteString(w, string(b))
			return
		}

		if userId > 0 && !user.IsActive {
			w.Header().Add("Content-Type", "application/json")
			w.Header().Add("Access-Control-Allow-Origin", "*")
			w.WriteHeader(http.StatusUnauthorized)
			msg := core.HandleErrorData{
				Status:  core.Account_Locked,
				Message: "Account locked",
			}
			b, _ := json.Marshal(msg)
			io.WriteString(w, string(b))
			return
		}

		sqlCmd := `INSERT INTO system_log (user_id, log_type, log_date, log_title, log_text) VALUES (?, ?, NOW(), ?, ?)`
		_, err := ormDB.DB().Exec(sqlCmd, userId, 1, "open Route", r.Header.Get("Client")+" "+r.Method+" "+r.RequestURI)
		if err != nil {
			log.Println(err)
		}

		h.ServeHTTP(w, r) // call original

		ende := time.Now().UnixNano()
		dauer := ende - start
		if dauer > int64(time.Second) {
			log.Printf("slow route %s, took %fs", r.RequestURI, float64(dauer)/float64(time.Second))
		}
	})
}
