package main

import (
	"net/http"

	"github.com/Luismorlan/blogmux/file_store"
	"github.com/Luismorlan/blogmux/server"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/Luismorlan/blogmux/utils/dotenv"
	. "github.com/Luismorlan/blogmux/utils/log"
	"github.com/alexedwards/scs/v2"
)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	var store file_store.UploadFileStore
	var localStore *file_store.LocalFileStore
	if dotenv.IsProdEnv() {
		store, err = file_store.NewS3FileStore(s3ImageBucket)
	} else {
		localStore, err = file_store.NewLocalFileStore(localImageBucket)
		store = localStore
	}
	if err != nil {
		Log.Fatal("fail to initialize file store: ", err)
	}

	sessions := scs.New()

	s := server.NewServer(db, utils.GetPageCache(), sessions, store)

	// Default With the Logger and Recovery middleware already attached
	router := s.NewRouter("templates/*.html")
	if localStore != nil {
		router.Static("/media", localStore.FolderName())
	}

	Log.Info("blog server starts up")
	if err := http.ListenAndServe(":8080", sessions.LoadAndSave(router)); err != nil {
		Log.Fatal("server exited: ", err)
	}
}

const (
	s3ImageBucket    = "blogmux-post-image-output"
	localImageBucket = "post_images"
)
