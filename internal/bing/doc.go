// Package bing talks to the Bing homepage image archive.
//
// The archive is queried by day offset: 0 is today's image, 1 is
// yesterday's, and so on. Each query asks for a single record
// (HPImageArchive.aspx?format=js&idx=<offset>&n=1), whose relative url is
// joined onto https://bing.com to form the image URL.
//
// # Resolving and fetching
//
//	client := bing.NewClient(httpClient, imageService, "", "")
//
//	imageURL, err := client.ResolveImageURL(ctx, 8)
//	if err != nil {
//	    return err
//	}
//	img, err := client.FetchImage(ctx, imageURL, nil)
//
// # Errors
//
// Every error is a *model.Error: transport failures, non-2xx statuses
// (KindProtocol), malformed JSON or image bytes (KindDecode) and empty
// archive answers or future offsets (KindNotFound).
package bing
