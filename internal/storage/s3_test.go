package storage

import "testing"

func TestS3Store_PublicURL(t *testing.T) {
	s := &S3Store{bucket: "necronet-artifacts-linford", region: "eu-north-1"}
	want := "https://necronet-artifacts-linford.s3.eu-north-1.amazonaws.com/artifacts/flash/a1/game.swf"
	if got := s.PublicURL("artifacts/flash/a1/game.swf"); got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}

func TestS3Store_PublicURL_CustomEndpoint(t *testing.T) {
	s := &S3Store{bucket: "artifacts", region: "us-east-1", endpoint: "http://minio:9000"}
	want := "http://minio:9000/artifacts/narrations/a1_ghost.mp3"
	if got := s.PublicURL("narrations/a1_ghost.mp3"); got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}
